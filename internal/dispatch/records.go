package dispatch

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattjoyce/skydispatch/internal/store"
)

// freshnessWindowMillis is how recently a flight must have reported to count as active.
const freshnessWindowMillis = 10 * 60 * 1000

// flight is one live_flights entry.
type flight struct {
	ID          string   `json:"-"`
	Callsign    string   `json:"callsign"`
	Dep         string   `json:"dep"`
	Arr         string   `json:"arr"`
	Aircraft    string   `json:"aircraft"`
	LastContact *float64 `json:"lastContact"`
}

func decodeFlight(id string, raw json.RawMessage) (flight, error) {
	var f flight
	if err := json.Unmarshal(raw, &f); err != nil {
		return flight{}, fmt.Errorf("decode flight %q: %w", id, err)
	}
	f.ID = id
	return f, nil
}

// activeAt reports whether f has been in contact within the freshness window
// ending at nowMillis. Flights with no contact time are never active.
func (f flight) activeAt(nowMillis int64) bool {
	if f.LastContact == nil {
		return false
	}
	return float64(nowMillis)-*f.LastContact < freshnessWindowMillis
}

func (f flight) line() string {
	return fmt.Sprintf("**%s**: %s ➔ %s | %s", f.Callsign, f.Dep, f.Arr, f.Aircraft)
}

// flightHours returns the flight time recorded on a pirep in hours. A
// non-empty stats.flightTime takes precedence over the top-level field, even
// when it parses to zero.
func flightHours(doc store.Document) float64 {
	if stats, ok := doc["stats"].(map[string]any); ok && hasValue(stats["flightTime"]) {
		h, _ := parseHours(stats["flightTime"])
		return h
	}
	h, _ := parseHours(doc["flightTime"])
	return h
}

// hasValue reports whether v is a non-empty string or a non-zero number.
func hasValue(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return false
	}
}

// parseHours accepts "H:MM", a bare minute count ("45"), a decimal hour
// string ("1.5") or a JSON number of hours. In "H:MM" only the leading digits
// of each field count, so "1:30:00" is 1.5. ok is false for missing, empty,
// zero or unparsable values.
func parseHours(v any) (hours float64, ok bool) {
	switch t := v.(type) {
	case float64:
		return t, t != 0
	case int:
		return float64(t), t != 0
	case int64:
		return float64(t), t != 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if strings.Contains(s, ":") {
			parts := strings.Split(s, ":")
			h := float64(leadingInt(parts[0])) + float64(leadingInt(parts[1]))/60
			return h, h != 0
		}
		if !strings.ContainsAny(s, ".eE") {
			if mm, err := strconv.Atoi(s); err == nil {
				return float64(mm) / 60, mm != 0
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, f != 0
	default:
		return 0, false
	}
}

// leadingInt parses the run of digits at the start of s, ignoring surrounding
// space. Anything else yields 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

// profilePic returns the user's avatar URL when it is a non-empty string.
func profilePic(doc store.Document) string {
	s, _ := doc["profilePic"].(string)
	return strings.TrimSpace(s)
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/skydispatch/internal/store"
)

// Fixtures is seed data for the local driver.
//
//	documents:
//	  users:
//	    - username: ace
//	realtime:
//	  live_flights:
//	    VSK101: {callsign: VSK101, lastContact: now-2m}
//
// String values of the form "now" or "now-<duration>" are replaced with epoch
// milliseconds relative to the seeding time.
type Fixtures struct {
	Documents map[string][]map[string]any          `yaml:"documents"`
	Realtime  map[string]map[string]map[string]any `yaml:"realtime"`
}

// DocumentWriter accepts seeded documents.
type DocumentWriter interface {
	Put(ctx context.Context, collection, id string, doc store.Document) error
}

// NodeWriter accepts seeded realtime nodes.
type NodeWriter interface {
	Set(ctx context.Context, path, key string, value json.RawMessage) error
}

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Documents int
	Nodes     int
}

// LoadFixtures reads a fixtures YAML file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

// Seed writes fx through docs and nodes. Documents without an "id" field get
// a random one.
func Seed(ctx context.Context, fx *Fixtures, docs DocumentWriter, nodes NodeWriter, now time.Time) (SeedResult, error) {
	var res SeedResult

	for _, collection := range sortedKeys(fx.Documents) {
		for _, raw := range fx.Documents[collection] {
			doc := store.Document{}
			for k, v := range raw {
				doc[k] = v
			}
			id, _ := doc["id"].(string)
			delete(doc, "id")
			if id == "" {
				id = uuid.NewString()
			}
			resolved, err := resolveNow(map[string]any(doc), now)
			if err != nil {
				return res, fmt.Errorf("%s/%s: %w", collection, id, err)
			}
			if err := docs.Put(ctx, collection, id, store.Document(resolved.(map[string]any))); err != nil {
				return res, err
			}
			res.Documents++
		}
	}

	for _, path := range sortedKeys(fx.Realtime) {
		children := fx.Realtime[path]
		for _, key := range sortedKeys(children) {
			resolved, err := resolveNow(children[key], now)
			if err != nil {
				return res, fmt.Errorf("%s/%s: %w", path, key, err)
			}
			value, err := json.Marshal(resolved)
			if err != nil {
				return res, fmt.Errorf("encode %s/%s: %w", path, key, err)
			}
			if err := nodes.Set(ctx, path, key, value); err != nil {
				return res, err
			}
			res.Nodes++
		}
	}
	return res, nil
}

// resolveNow copies v, replacing relative "now" timestamps.
func resolveNow(v any, now time.Time) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			r, err := resolveNow(child, now)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			r, err := resolveNow(child, now)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case string:
		rest, ok := strings.CutPrefix(strings.TrimSpace(t), "now")
		switch {
		case !ok:
			return t, nil
		case rest == "":
			return now.UnixMilli(), nil
		case rest[0] != '-' && rest[0] != '+':
			return t, nil
		}
		offset, err := time.ParseDuration(rest)
		if err != nil {
			return nil, fmt.Errorf("relative time %q: %w", t, err)
		}
		return now.Add(offset).UnixMilli(), nil
	default:
		return v, nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

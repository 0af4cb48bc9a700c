package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mattjoyce/skydispatch/internal/interaction"
	"github.com/mattjoyce/skydispatch/internal/reply"
	"github.com/mattjoyce/skydispatch/internal/store"
)

// Embed colors.
const (
	colorLiveOps = 0x00AE86
	colorStats   = 0x5865F2
	colorProfile = 0xF1C40F
)

// usernameOption is the option the pilot command reads its argument from.
const usernameOption = "username"

func (d *Dispatcher) ping(context.Context, *interaction.Interaction, *slog.Logger) (reply.Response, error) {
	return d.formatter.Text("Pong! ✈️ IBM Application Dispatch is online."), nil
}

// who lists flights that reported within the freshness window.
func (d *Dispatcher) who(ctx context.Context, _ *interaction.Interaction, logger *slog.Logger) (reply.Response, error) {
	live, err := d.stores.Realtime()
	if err != nil {
		return reply.Response{}, err
	}
	children, err := live.Children(ctx, store.PathLiveFlights)
	if err != nil {
		return reply.Response{}, fmt.Errorf("read %s: %w", store.PathLiveFlights, err)
	}
	if len(children) == 0 {
		return d.formatter.Text("No pilots flying. 🛫"), nil
	}

	ids := make([]string, 0, len(children))
	for id := range children {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nowMillis := d.now().UnixMilli()
	var lines []string
	for _, id := range ids {
		f, err := decodeFlight(id, children[id])
		if err != nil {
			logger.Warn("skipping flight", "flight_id", id, "error", err)
			continue
		}
		if f.activeAt(nowMillis) {
			lines = append(lines, f.line())
		}
	}
	if len(lines) == 0 {
		return d.formatter.Text("No active pilots. 🛫"), nil
	}

	description := fmt.Sprintf("**%d** pilots flying:\n\n%s", len(lines), strings.Join(lines, "\n"))
	return d.formatter.Embed("📡 Live Ops", colorLiveOps, description, ""), nil
}

// stats reads both collections concurrently and summarizes them.
func (d *Dispatcher) stats(ctx context.Context, _ *interaction.Interaction, _ *slog.Logger) (reply.Response, error) {
	docs, err := d.stores.Documents()
	if err != nil {
		return reply.Response{}, err
	}

	var pireps, users []store.Document
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pireps, err = docs.List(gctx, store.CollectionPireps)
		if err != nil {
			return fmt.Errorf("list %s: %w", store.CollectionPireps, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = docs.List(gctx, store.CollectionUsers)
		if err != nil {
			return fmt.Errorf("list %s: %w", store.CollectionUsers, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return reply.Response{}, err
	}

	var hours float64
	for _, p := range pireps {
		hours += flightHours(p)
	}

	description := fmt.Sprintf("Pilots: %d | Flights: %d | Hours: %d", len(users), len(pireps), int64(math.Round(hours)))
	return d.formatter.Embed("📊 VA Stats", colorStats, description, ""), nil
}

// pilot shows one user's profile and flight count.
func (d *Dispatcher) pilot(ctx context.Context, in *interaction.Interaction, logger *slog.Logger) (reply.Response, error) {
	username := pilotUsername(in)
	if username == "" {
		return d.formatter.Text("Please provide a pilot username."), nil
	}

	docs, err := d.stores.Documents()
	if err != nil {
		return reply.Response{}, err
	}

	matches, err := docs.FindEqual(ctx, store.CollectionUsers, "username", username, 1)
	if err != nil {
		return reply.Response{}, fmt.Errorf("find user: %w", err)
	}
	if len(matches) == 0 {
		logger.Debug("pilot not found", "username", username)
		return d.formatter.Text(fmt.Sprintf("Pilot %s not found.", username)), nil
	}

	flights, err := docs.FindEqual(ctx, store.CollectionPireps, "username", username, 0)
	if err != nil {
		return reply.Response{}, fmt.Errorf("find flights: %w", err)
	}

	title := fmt.Sprintf("👨‍✈️ Profile: %s", username)
	description := fmt.Sprintf("Flights: %d", len(flights))
	return d.formatter.Embed(title, colorProfile, description, profilePic(matches[0])), nil
}

// pilotUsername reads the username option, falling back to a sole unnamed
// argument under any other name.
func pilotUsername(in *interaction.Interaction) string {
	if opt, ok := in.Option(usernameOption); ok {
		return strings.TrimSpace(opt.String())
	}
	if len(in.Options) == 1 {
		return strings.TrimSpace(in.Options[0].String())
	}
	return ""
}

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattjoyce/skydispatch/internal/interaction"
	"github.com/mattjoyce/skydispatch/internal/log"
	"github.com/mattjoyce/skydispatch/internal/metrics"
	"github.com/mattjoyce/skydispatch/internal/reply"
	"github.com/mattjoyce/skydispatch/internal/store"
)

// ErrUnrecognized is returned for payloads the dispatcher does not handle.
var ErrUnrecognized = errors.New("unknown interaction type")

// Reply texts shared by several commands.
const (
	msgUnavailable = "⚠️ Dispatch is temporarily unavailable. Please try again later."
	msgCommandFail = "⚠️ Could not complete /%s: %v"
)

// handlerFunc runs one command against the stores.
type handlerFunc func(ctx context.Context, in *interaction.Interaction, logger *slog.Logger) (reply.Response, error)

type command struct {
	needsStore bool
	run        handlerFunc
}

// Dispatcher routes verified interactions to command handlers.
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	stores    *store.Handle
	commands  map[string]command
	now       func() time.Time
	formatter reply.Formatter
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the time source used for flight freshness.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithFormatter sets the reply formatter.
func WithFormatter(f reply.Formatter) Option {
	return func(d *Dispatcher) { d.formatter = f }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.Recorder) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// New creates a Dispatcher over stores. A nil handle behaves as not ready.
func New(stores *store.Handle, opts ...Option) *Dispatcher {
	if stores == nil {
		stores = store.NotReady(nil)
	}
	d := &Dispatcher{
		stores:    stores,
		now:       time.Now,
		formatter: reply.NewFormatter(""),
		metrics:   metrics.Noop{},
		logger:    log.WithComponent("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.commands = map[string]command{
		"ping":  {needsStore: false, run: d.ping},
		"who":   {needsStore: true, run: d.who},
		"stats": {needsStore: true, run: d.stats},
		"pilot": {needsStore: true, run: d.pilot},
	}
	return d
}

// Commands returns the names of the registered commands.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	return names
}

// Dispatch parses a verified request body and produces the reply.
// The only error it returns matches ErrUnrecognized.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) (reply.Response, error) {
	in, err := interaction.Parse(body)
	if err != nil {
		d.metrics.IncInteraction(interaction.KindOther.String(), metrics.OutcomeUnrecognized)
		d.logger.Warn("rejecting malformed interaction", "error", err)
		return reply.Response{}, fmt.Errorf("%w: %w", ErrUnrecognized, err)
	}

	logger := log.WithInteraction(d.logger, in.ID).With("kind", in.Kind.String())

	switch in.Kind {
	case interaction.KindHandshake:
		d.metrics.IncInteraction(in.Kind.String(), metrics.OutcomeOK)
		logger.Debug("answering handshake")
		return reply.Pong(), nil
	case interaction.KindCommand:
		return d.runCommand(ctx, in, logger.With("command", in.Command))
	default:
		d.metrics.IncInteraction(in.Kind.String(), metrics.OutcomeUnrecognized)
		logger.Warn("unsupported interaction", "type", in.Type)
		return reply.Response{}, fmt.Errorf("%w: type %d", ErrUnrecognized, in.Type)
	}
}

func (d *Dispatcher) runCommand(ctx context.Context, in *interaction.Interaction, logger *slog.Logger) (reply.Response, error) {
	cmd, ok := d.commands[in.Command]
	if !ok {
		d.metrics.IncInteraction(in.Kind.String(), metrics.OutcomeUnrecognized)
		logger.Warn("unknown command")
		return reply.Response{}, fmt.Errorf("%w: command %q", ErrUnrecognized, in.Command)
	}

	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		d.metrics.IncInteraction(in.Kind.String(), outcome)
		d.metrics.ObserveCommand(in.Command, outcome, time.Since(start).Seconds())
	}()

	if cmd.needsStore && !d.stores.Ready() {
		outcome = metrics.OutcomeUnavailable
		logger.Warn("stores not ready", "error", d.stores.Err())
		return d.formatter.Text(msgUnavailable), nil
	}

	resp, err := cmd.run(ctx, in, logger)
	switch {
	case err == nil:
		logger.Info("command completed", "duration_ms", time.Since(start).Milliseconds())
		return resp, nil
	case errors.Is(err, store.ErrNotReady):
		outcome = metrics.OutcomeUnavailable
		logger.Warn("stores not ready", "error", err)
		return d.formatter.Text(msgUnavailable), nil
	default:
		outcome = metrics.OutcomeStoreError
		logger.Error("command failed", "error", err)
		return d.formatter.Text(fmt.Sprintf(msgCommandFail, in.Command, err)), nil
	}
}

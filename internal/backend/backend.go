// Package backend builds the process-wide store handle from configuration.
//
// Initialization runs once at startup. Every failure is logged and yields a
// not-ready handle; the process keeps serving so that handshakes and ping
// still answer.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mattjoyce/skydispatch/internal/config"
	"github.com/mattjoyce/skydispatch/internal/credential"
	"github.com/mattjoyce/skydispatch/internal/firebase"
	"github.com/mattjoyce/skydispatch/internal/storage"
	"github.com/mattjoyce/skydispatch/internal/store"
)

// firebaseStores is what the firebase driver provides.
type firebaseStores interface {
	store.DocumentStore
	store.RealtimeStore
	io.Closer
	Probe(ctx context.Context, timeout time.Duration) error
}

var openFirebase = func(ctx context.Context, s firebase.Settings) (firebaseStores, error) {
	c, err := firebase.Open(ctx, s)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PreparedKey is a normalized, parsed service-account key.
type PreparedKey struct {
	PEM         string
	Fingerprint string
	Lines       int
}

// PrepareKey normalizes raw and checks that it parses as a private key.
func PrepareKey(raw string) (PreparedKey, error) {
	pemText, err := credential.Normalize(raw)
	if err != nil {
		return PreparedKey{}, err
	}
	if pemText == "" {
		return PreparedKey{}, credential.ErrEmpty
	}
	if _, err := credential.ParsePrivateKey(pemText); err != nil {
		return PreparedKey{}, err
	}
	return PreparedKey{
		PEM:         pemText,
		Fingerprint: credential.Fingerprint(pemText),
		Lines:       credential.BodyLines(pemText),
	}, nil
}

// Initialize opens the configured driver. It never returns nil.
func Initialize(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) *store.Handle {
	logger = logger.With("driver", cfg.Driver)

	var (
		h   *store.Handle
		err error
	)
	switch cfg.Driver {
	case config.DriverFirebase:
		h, err = initFirebase(ctx, cfg, logger)
	case config.DriverLocal:
		h, err = initLocal(ctx, cfg.Local, logger)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		attrs := []any{"error", err}
		if credential.IsKind(err, credential.KindStructural) {
			attrs = append(attrs, "credential_error", string(credential.KindStructural))
		}
		logger.Error("store initialization failed; commands needing data will be unavailable", attrs...)
		return store.NotReady(err)
	}
	logger.Info("stores ready")
	return h
}

func initFirebase(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*store.Handle, error) {
	key, err := PrepareKey(cfg.Firebase.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	logger.Info("private key normalized",
		"fingerprint", key.Fingerprint,
		"body_lines", key.Lines,
		"project_id", cfg.Firebase.ProjectID,
	)

	client, err := openFirebase(ctx, firebase.Settings{
		ProjectID:   cfg.Firebase.ProjectID,
		ClientEmail: cfg.Firebase.ClientEmail,
		PrivateKey:  key.PEM,
		DatabaseURL: cfg.Firebase.DatabaseURL,
	})
	if err != nil {
		return nil, err
	}

	if cfg.ProbeTimeout > 0 {
		if err := client.Probe(ctx, cfg.ProbeTimeout); err != nil {
			_ = client.Close()
			return nil, err
		}
		logger.Debug("probe succeeded")
	}
	return store.Ready(client, client, client), nil
}

// liveNodes is a realtime store that can also be seeded.
type liveNodes interface {
	store.RealtimeStore
	storage.NodeWriter
}

// LocalStores are the opened local driver stores.
type LocalStores struct {
	Documents *storage.Documents
	Realtime  liveNodes
	closers   closers
}

// Close releases every resource held by the local stores.
func (l *LocalStores) Close() error {
	return l.closers.Close()
}

// OpenLocal opens the SQLite document store and the realtime store, on Redis
// when a URL is configured and on the same SQLite file otherwise.
func OpenLocal(ctx context.Context, cfg config.LocalConfig) (*LocalStores, error) {
	db, err := storage.OpenSQLite(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	l := &LocalStores{Documents: storage.NewDocuments(db)}

	if cfg.RedisURL == "" {
		l.Realtime = storage.NewRealtime(db)
		l.closers = closers{db}
		return l, nil
	}

	live, err := storage.NewRedisRealtime(ctx, cfg.RedisURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	l.Realtime = live
	l.closers = closers{live, db}
	return l, nil
}

func initLocal(ctx context.Context, cfg config.LocalConfig, logger *slog.Logger) (*store.Handle, error) {
	l, err := OpenLocal(ctx, cfg)
	if err != nil {
		return nil, err
	}
	realtime := "sqlite"
	if cfg.RedisURL != "" {
		realtime = "redis"
	}
	logger.Info("local stores opened", "path", cfg.Path, "realtime", realtime)
	return store.Ready(l.Documents, l.Realtime, l), nil
}

type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, cl := range c {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

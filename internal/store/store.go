// Package store defines the read-only query surface the dispatcher needs from
// the two backing stores, and the Handle that carries them once initialized.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/mattjoyce/skydispatch/internal/store DocumentStore,RealtimeStore

// Collections and paths read by the dispatcher.
const (
	CollectionUsers  = "users"
	CollectionPireps = "pireps"
	PathLiveFlights  = "live_flights"
)

// ErrNotReady is returned by a Handle whose initialization failed.
var ErrNotReady = errors.New("store not ready")

// Document is a single document's fields as decoded from the document store.
type Document map[string]any

// DocumentStore queries document collections.
type DocumentStore interface {
	// List returns every document in collection.
	List(ctx context.Context, collection string) ([]Document, error)
	// FindEqual returns documents whose field equals value. limit <= 0 means no limit.
	FindEqual(ctx context.Context, collection, field string, value any, limit int) ([]Document, error)
}

// RealtimeStore reads nodes from the realtime key-value tree.
type RealtimeStore interface {
	// Children returns the child nodes under path keyed by child id. A missing
	// path yields a nil map and no error.
	Children(ctx context.Context, path string) (map[string]json.RawMessage, error)
}

// Handle is the process-wide store capability. It is either ready or not,
// and never changes after construction.
type Handle struct {
	docs    DocumentStore
	live    RealtimeStore
	cause   error
	closers []io.Closer
}

// Ready returns a usable handle. closers are released by Close.
func Ready(docs DocumentStore, live RealtimeStore, closers ...io.Closer) *Handle {
	return &Handle{docs: docs, live: live, closers: closers}
}

// NotReady returns a handle that fails every access with ErrNotReady wrapping cause.
func NotReady(cause error) *Handle {
	if cause == nil {
		cause = errors.New("initialization did not complete")
	}
	return &Handle{cause: cause}
}

// Ready reports whether stores can be accessed.
func (h *Handle) Ready() bool {
	return h != nil && h.cause == nil && h.docs != nil && h.live != nil
}

// Err returns the initialization failure, or nil for a ready handle.
func (h *Handle) Err() error {
	if h.Ready() {
		return nil
	}
	return h.notReady()
}

func (h *Handle) notReady() error {
	if h == nil || h.cause == nil {
		return ErrNotReady
	}
	return fmt.Errorf("%w: %w", ErrNotReady, h.cause)
}

// Documents returns the document store or an error matching ErrNotReady.
func (h *Handle) Documents() (DocumentStore, error) {
	if !h.Ready() {
		return nil, h.notReady()
	}
	return h.docs, nil
}

// Realtime returns the realtime store or an error matching ErrNotReady.
func (h *Handle) Realtime() (RealtimeStore, error) {
	if !h.Ready() {
		return nil, h.notReady()
	}
	return h.live, nil
}

// Close releases driver resources held by the handle.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	var errs []error
	for _, c := range h.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/mattjoyce/skydispatch/internal/store"
)

// Client reads Firestore collections and Realtime Database paths.
// It implements store.DocumentStore and store.RealtimeStore.
type Client struct {
	docs *firestore.Client
	rtdb *db.Client
}

// Open builds both clients from s. No network traffic happens until the
// first read or Probe.
func Open(ctx context.Context, s Settings) (*Client, error) {
	creds, err := CredentialsJSON(s)
	if err != nil {
		return nil, err
	}

	app, err := fb.NewApp(ctx, &fb.Config{
		ProjectID:   s.ProjectID,
		DatabaseURL: s.DatabaseURL,
	}, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	rtdb, err := app.Database(ctx)
	if err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("init realtime database: %w", err)
	}
	return &Client{docs: fs, rtdb: rtdb}, nil
}

// Probe performs one cheap read against each store, bounded by timeout.
func (c *Client) Probe(ctx context.Context, timeout time.Duration) error {
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	it := c.docs.Collection(store.CollectionUsers).Limit(1).Documents(pctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("probe firestore: %w", err)
	}

	var shallow map[string]bool
	if err := c.rtdb.NewRef(store.PathLiveFlights).GetShallow(pctx, &shallow); err != nil {
		return fmt.Errorf("probe realtime database: %w", err)
	}
	return nil
}

// List returns every document in collection.
func (c *Client) List(ctx context.Context, collection string) ([]store.Document, error) {
	return collect(c.docs.Collection(collection).Documents(ctx))
}

// FindEqual returns documents whose field equals value.
func (c *Client) FindEqual(ctx context.Context, collection, field string, value any, limit int) ([]store.Document, error) {
	q := c.docs.Collection(collection).Where(field, "==", value)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return collect(q.Documents(ctx))
}

func collect(it *firestore.DocumentIterator) ([]store.Document, error) {
	defer it.Stop()

	var out []store.Document
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, store.Document(snap.Data()))
	}
}

// Children reads the node at path. A missing node yields nil.
func (c *Client) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	var children map[string]json.RawMessage
	if err := c.rtdb.NewRef(path).Get(ctx, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// Close releases the Firestore connection.
func (c *Client) Close() error {
	return c.docs.Close()
}

var (
	_ store.DocumentStore = (*Client)(nil)
	_ store.RealtimeStore = (*Client)(nil)
)

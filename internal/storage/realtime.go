package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Realtime is a store.RealtimeStore over the realtime_nodes table.
type Realtime struct {
	db *sql.DB
}

// NewRealtime wraps an opened database.
func NewRealtime(db *sql.DB) *Realtime {
	return &Realtime{db: db}
}

// Children returns the nodes under path. A path with no children yields nil.
func (r *Realtime) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM realtime_nodes WHERE path = ?;`, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer rows.Close()

	var out map[string]json.RawMessage
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return out, nil
}

// Set writes a child node. value must be valid JSON.
func (r *Realtime) Set(ctx context.Context, path, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("node %s/%s is not valid JSON", path, key)
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO realtime_nodes(path, key, value, updated_at) VALUES(?, ?, ?, ?)
ON CONFLICT(path, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		path, key, string(value), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", path, key, err)
	}
	return nil
}

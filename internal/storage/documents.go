package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/mattjoyce/skydispatch/internal/store"
)

// fieldName restricts FindEqual to plain top-level field names, which are
// spliced into a JSON path.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Documents is a store.DocumentStore over the documents table.
type Documents struct {
	db *sql.DB
}

// NewDocuments wraps an opened database.
func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db}
}

// List returns every document in collection in id order.
func (d *Documents) List(ctx context.Context, collection string) ([]store.Document, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = ? ORDER BY id;`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return scanDocuments(rows)
}

// FindEqual returns documents whose top-level field equals value.
func (d *Documents) FindEqual(ctx context.Context, collection, field string, value any, limit int) ([]store.Document, error) {
	if !fieldName.MatchString(field) {
		return nil, fmt.Errorf("invalid field name %q", field)
	}
	if b, ok := value.(bool); ok {
		// json_extract yields 1/0 for JSON booleans.
		value = 0
		if b {
			value = 1
		}
	}

	query := `SELECT id, data FROM documents WHERE collection = ? AND json_extract(data, ?) = ? ORDER BY id`
	args := []any{collection, "$." + field, value}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := d.db.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("find %s where %s: %w", collection, field, err)
	}
	return scanDocuments(rows)
}

// Put writes doc under collection/id, replacing any previous contents.
func (d *Documents) Put(ctx context.Context, collection, id string, doc store.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	_, err = d.db.ExecContext(ctx, `
INSERT INTO documents(collection, id, data, updated_at) VALUES(?, ?, ?, ?)
ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at;`,
		collection, id, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func scanDocuments(rows *sql.Rows) ([]store.Document, error) {
	defer rows.Close()

	var out []store.Document
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc := store.Document{}
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

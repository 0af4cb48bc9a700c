package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/skydispatch/internal/store"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDocuments_ListAndFind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	docs := NewDocuments(openTestDB(t))

	require.NoError(t, docs.Put(ctx, "users", "u1", store.Document{"username": "ace", "profilePic": "https://x/ace.png"}))
	require.NoError(t, docs.Put(ctx, "users", "u2", store.Document{"username": "bob"}))
	require.NoError(t, docs.Put(ctx, "pireps", "p1", store.Document{"username": "ace", "flightTime": "1:30"}))
	require.NoError(t, docs.Put(ctx, "pireps", "p2", store.Document{"username": "ace", "stats": map[string]any{"flightTime": "0:45"}}))
	require.NoError(t, docs.Put(ctx, "pireps", "p3", store.Document{"username": "bob", "flightTime": "2:00"}))

	users, err := docs.List(ctx, "users")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	empty, err := docs.List(ctx, "aircraft")
	require.NoError(t, err)
	assert.Empty(t, empty)

	found, err := docs.FindEqual(ctx, "pireps", "username", "ace", 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "1:30", found[0]["flightTime"])
	assert.Equal(t, map[string]any{"flightTime": "0:45"}, found[1]["stats"])

	one, err := docs.FindEqual(ctx, "pireps", "username", "ace", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	none, err := docs.FindEqual(ctx, "users", "username", "ghost", 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDocuments_PutReplaces(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	docs := NewDocuments(openTestDB(t))

	require.NoError(t, docs.Put(ctx, "users", "u1", store.Document{"username": "ace"}))
	require.NoError(t, docs.Put(ctx, "users", "u1", store.Document{"username": "ace2"}))

	users, err := docs.List(ctx, "users")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ace2", users[0]["username"])
}

func TestDocuments_FindEqualRejectsPathInjection(t *testing.T) {
	t.Parallel()
	docs := NewDocuments(openTestDB(t))

	_, err := docs.FindEqual(context.Background(), "users", "a.b') OR 1=1 --", "x", 0)
	assert.ErrorContains(t, err, "invalid field name")
}

func TestRealtime_Children(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rt := NewRealtime(openTestDB(t))

	missing, err := rt.Children(ctx, "live_flights")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, rt.Set(ctx, "live_flights", "f1", json.RawMessage(`{"callsign":"VSK1","lastContact":1000}`)))
	require.NoError(t, rt.Set(ctx, "live_flights", "f2", json.RawMessage(`{"callsign":"VSK2"}`)))
	require.NoError(t, rt.Set(ctx, "other", "x", json.RawMessage(`1`)))

	children, err := rt.Children(ctx, "live_flights")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.JSONEq(t, `{"callsign":"VSK1","lastContact":1000}`, string(children["f1"]))

	assert.Error(t, rt.Set(ctx, "live_flights", "bad", json.RawMessage(`{nope`)))
}

package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/game/world"
	"github.com/cory-johannsen/starquest/internal/store"
	"github.com/cory-johannsen/starquest/internal/store/file"
)

func newStore(t *testing.T) *file.Store {
	t.Helper()
	s, err := file.New(t.TempDir(), uuid.NewString(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func testRecord() store.Record {
	return store.Record{
		Name:        "Bridge",
		Connections: []string{"Lab", "Cargo", "Sickbay"},
		Type:        world.StartRoom,
	}
}

func TestPutGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testRecord()))

	rec, err := s.Get(ctx, "Bridge")
	require.NoError(t, err)
	assert.Equal(t, testRecord(), rec)
}

func TestPut_WritesClassicFormat(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Put(context.Background(), testRecord()))

	data, err := os.ReadFile(filepath.Join(s.Dir(), "Bridge"))
	require.NoError(t, err)
	assert.Equal(t,
		"ROOM NAME: Bridge\nCONNECTION 1: Lab\nCONNECTION 2: Cargo\nCONNECTION 3: Sickbay\nROOM TYPE: START_ROOM\n",
		string(data))
}

func TestPut_Replaces(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rec := testRecord()
	require.NoError(t, s.Put(ctx, rec))
	rec.Type = world.MidRoom
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "Bridge")
	require.NoError(t, err)
	assert.Equal(t, world.MidRoom, got.Type)
}

func TestGet_NotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.Get(context.Background(), "Holodeck")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testRecord()))
	require.NoError(t, s.Remove(ctx, "Bridge"))

	_, err := s.Get(ctx, "Bridge")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Removing again is a no-op.
	assert.NoError(t, s.Remove(ctx, "Bridge"))
}

func TestRemoveAll(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testRecord()))
	require.NoError(t, s.RemoveAll(ctx))

	_, err := os.Stat(s.Dir())
	assert.True(t, os.IsNotExist(err), "session directory must be gone")
}

func TestSessionDirsAreIsolated(t *testing.T) {
	base := t.TempDir()
	a, err := file.New(base, "session-a", zap.NewNop())
	require.NoError(t, err)
	b, err := file.New(base, "session-b", zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.Put(ctx, testRecord()))

	_, err = b.Get(ctx, "Bridge")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestContextCancelled(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Put(ctx, testRecord()))
	_, err := s.Get(ctx, "Bridge")
	assert.Error(t, err)
}

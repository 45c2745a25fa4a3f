package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/starquest/internal/game/world"
	"github.com/cory-johannsen/starquest/internal/store"
	"github.com/cory-johannsen/starquest/internal/store/postgres"
	"github.com/cory-johannsen/starquest/internal/testutil"
)

func setupRoomStore(t *testing.T) (*postgres.RoomStore, *testutil.PostgresContainer) {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewRoomStore(pc.RawPool, uuid.NewString()), pc
}

func bridgeRecord() store.Record {
	return store.Record{
		Name:        "Bridge",
		Connections: []string{"Lab", "Cargo", "Sickbay"},
		Type:        world.StartRoom,
	}
}

func TestRoomStore_PutGet(t *testing.T) {
	s, _ := setupRoomStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, bridgeRecord()))

	rec, err := s.Get(ctx, "Bridge")
	require.NoError(t, err)
	assert.Equal(t, bridgeRecord(), rec)
}

func TestRoomStore_PutReplaces(t *testing.T) {
	s, _ := setupRoomStore(t)
	ctx := context.Background()

	rec := bridgeRecord()
	require.NoError(t, s.Put(ctx, rec))

	rec.Connections = []string{"Lab"}
	rec.Type = world.MidRoom
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "Bridge")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lab"}, got.Connections)
	assert.Equal(t, world.MidRoom, got.Type)
}

func TestRoomStore_GetNotFound(t *testing.T) {
	s, _ := setupRoomStore(t)
	_, err := s.Get(context.Background(), "Holodeck")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoomStore_Remove(t *testing.T) {
	s, _ := setupRoomStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, bridgeRecord()))
	require.NoError(t, s.Remove(ctx, "Bridge"))

	_, err := s.Get(ctx, "Bridge")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Removing again is a no-op.
	assert.NoError(t, s.Remove(ctx, "Bridge"))
}

func TestRoomStore_RemoveAll(t *testing.T) {
	s, _ := setupRoomStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, bridgeRecord()))
	rec := bridgeRecord()
	rec.Name = "Lab"
	rec.Type = world.MidRoom
	require.NoError(t, s.Put(ctx, rec))

	require.NoError(t, s.RemoveAll(ctx))

	_, err := s.Get(ctx, "Bridge")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Get(ctx, "Lab")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoomStore_SessionsAreIsolated(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	a := postgres.NewRoomStore(pc.RawPool, uuid.NewString())
	b := postgres.NewRoomStore(pc.RawPool, uuid.NewString())

	ctx := context.Background()
	require.NoError(t, a.Put(ctx, bridgeRecord()))

	_, err := b.Get(ctx, "Bridge")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Session B's cleanup must not touch session A's records.
	require.NoError(t, b.RemoveAll(ctx))
	_, err = a.Get(ctx, "Bridge")
	assert.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	require.NoError(t, postgres.Migrate(pc.DSN()))
	assert.NoError(t, postgres.Migrate(pc.DSN()), "re-applying an up-to-date schema must not fail")
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/starquest/internal/game/world"
	"github.com/cory-johannsen/starquest/internal/store"
)

// RoomStore is a PostgreSQL-backed RoomStore scoped to one game session.
// Records from concurrent or crashed sessions share the table, namespaced by
// session id.
type RoomStore struct {
	db        *pgxpool.Pool
	sessionID string
}

// NewRoomStore creates a RoomStore for the given session.
//
// Precondition: db must be a valid, open connection pool with the rooms
// schema applied (see Migrate); sessionID must be non-empty.
func NewRoomStore(db *pgxpool.Pool, sessionID string) *RoomStore {
	return &RoomStore{db: db, sessionID: sessionID}
}

// Put writes a room record, replacing any previous record of that name.
func (s *RoomStore) Put(ctx context.Context, rec store.Record) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO rooms (session_id, name, connections, room_type)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, name)
		 DO UPDATE SET connections = EXCLUDED.connections, room_type = EXCLUDED.room_type`,
		s.sessionID, rec.Name, rec.Connections, string(rec.Type),
	)
	if err != nil {
		return fmt.Errorf("inserting room record %q: %w", rec.Name, err)
	}
	return nil
}

// Get reads the record for the named room.
//
// Postcondition: Returns the record with connection order preserved, or
// store.ErrNotFound if the session has no such room.
func (s *RoomStore) Get(ctx context.Context, name string) (store.Record, error) {
	rec := store.Record{Name: name}
	var roomType string
	err := s.db.QueryRow(ctx,
		`SELECT connections, room_type FROM rooms
		 WHERE session_id = $1 AND name = $2`,
		s.sessionID, name,
	).Scan(&rec.Connections, &roomType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Record{}, fmt.Errorf("room %q: %w", name, store.ErrNotFound)
		}
		return store.Record{}, fmt.Errorf("querying room record %q: %w", name, err)
	}
	rec.Type = world.RoomType(roomType)
	return rec, nil
}

// Remove deletes the named room's record. An absent record is not an error.
func (s *RoomStore) Remove(ctx context.Context, name string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM rooms WHERE session_id = $1 AND name = $2`,
		s.sessionID, name,
	)
	if err != nil {
		return fmt.Errorf("deleting room record %q: %w", name, err)
	}
	return nil
}

// RemoveAll deletes every record of the session.
func (s *RoomStore) RemoveAll(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM rooms WHERE session_id = $1`,
		s.sessionID,
	)
	if err != nil {
		return fmt.Errorf("deleting session records: %w", err)
	}
	return nil
}

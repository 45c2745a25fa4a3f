// Package store defines the RoomStore contract: persistence of per-room
// records between world generation and play, plus the text record format
// shared by backends and the game's on-disk files.
package store

import (
	"context"
	"errors"

	"github.com/cory-johannsen/starquest/internal/game/world"
)

// ErrNotFound is returned when a room record lookup yields no results.
var ErrNotFound = errors.New("room record not found")

// Record is the persisted form of a room: the three fields the traversal
// engine needs each turn.
type Record struct {
	// Name is the room's unique name.
	Name string
	// Connections holds connected room names in their stored order. The
	// engine presents them in exactly this order.
	Connections []string
	// Type is the room's role.
	Type world.RoomType
}

// RecordFromRoom builds a Record snapshot of a room.
//
// Precondition: r must be fully generated and typed.
func RecordFromRoom(r *world.Room) Record {
	conns := make([]string, len(r.Connections))
	copy(conns, r.Connections)
	return Record{
		Name:        r.Name,
		Connections: conns,
		Type:        r.Type,
	}
}

// Store persists and retrieves room records for one game session.
//
// Implementations are used strictly sequentially: one record is read, fully
// presented, then released before the next read.
type Store interface {
	// Put writes a room record, replacing any previous record of that name.
	Put(ctx context.Context, rec Record) error
	// Get reads the record for the named room. Returns ErrNotFound if absent.
	Get(ctx context.Context, name string) (Record, error)
	// Remove deletes the named room's record. Removing an absent record is
	// not an error.
	Remove(ctx context.Context, name string) error
	// RemoveAll deletes every record of the session. Called at session end.
	RemoveAll(ctx context.Context) error
}

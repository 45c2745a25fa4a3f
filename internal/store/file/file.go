// Package file provides the default RoomStore backend: one text file per
// room inside a per-session directory, removed when the session ends.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/store"
)

// dirPattern names the per-session directory. The classic game used the
// process id as the suffix; the session id (a uuid) serves the same purpose
// without colliding across restarts.
const dirPattern = "starquest.rooms.%s"

// Store is a file-backed RoomStore.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates the session directory and returns a Store writing into it.
// An empty baseDir means the system temp directory.
//
// Precondition: sessionID must be non-empty; logger must be non-nil.
// Postcondition: Returns a Store whose directory exists, or a non-nil error.
func New(baseDir, sessionID string, logger *zap.Logger) (*Store, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir := filepath.Join(baseDir, fmt.Sprintf(dirPattern, sessionID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory %s: %w", dir, err)
	}
	logger.Debug("session directory created", zap.String("dir", dir))
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the session directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Put writes the record to <dir>/<room name>.
func (s *Store) Put(ctx context.Context, rec store.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, rec.Name)
	if err := os.WriteFile(path, store.EncodeRecord(rec), 0o644); err != nil {
		return fmt.Errorf("writing room record %s: %w", path, err)
	}
	s.logger.Debug("room record written",
		zap.String("room", rec.Name),
		zap.Int("connections", len(rec.Connections)),
	)
	return nil
}

// Get reads and parses the record for the named room.
//
// Postcondition: Returns the record, or store.ErrNotFound if no file exists.
func (s *Store) Get(ctx context.Context, name string) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return store.Record{}, err
	}
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store.Record{}, fmt.Errorf("room %q: %w", name, store.ErrNotFound)
		}
		return store.Record{}, fmt.Errorf("reading room record %s: %w", path, err)
	}
	rec, err := store.DecodeRecord(data)
	if err != nil {
		return store.Record{}, fmt.Errorf("parsing room record %s: %w", path, err)
	}
	return rec, nil
}

// Remove deletes the named room's file. An absent file is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing room record %s: %w", path, err)
	}
	return nil
}

// RemoveAll deletes the whole session directory.
func (s *Store) RemoveAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing session directory %s: %w", s.dir, err)
	}
	s.logger.Debug("session directory removed", zap.String("dir", s.dir))
	return nil
}

// Package player tracks a single session's traversal progress: the ordered
// path of rooms entered and the step count.
package player

import (
	"errors"

	"github.com/google/uuid"
)

// ErrPathLimit is returned when a configured path ceiling is reached.
var ErrPathLimit = errors.New("path limit reached")

// State accumulates a session's moves. It is mutated only by the traversal
// loop and needs no locking: there is exactly one player.
//
// Invariant: len(Path()) == StepsTaken().
type State struct {
	id      string
	steps   int
	path    []string
	maxPath int
}

// NewState creates an empty State with a fresh session id.
// maxPath caps the recorded path; 0 means unbounded. The classic game used a
// fixed 32-entry buffer, which is now just one possible configuration.
func NewState(maxPath int) *State {
	return &State{
		id:      uuid.NewString(),
		maxPath: maxPath,
	}
}

// ID returns the session id. It namespaces the session's room records in
// the store and tags its log entries.
func (s *State) ID() string {
	return s.id
}

// RecordStep appends roomName to the path and increments the step count.
//
// Postcondition: Returns nil and records the step, or ErrPathLimit leaving
// the state unchanged.
func (s *State) RecordStep(roomName string) error {
	if s.maxPath > 0 && s.steps >= s.maxPath {
		return ErrPathLimit
	}
	s.path = append(s.path, roomName)
	s.steps++
	return nil
}

// StepsTaken returns the number of accepted moves.
func (s *State) StepsTaken() int {
	return s.steps
}

// Summary is the read-only report of a finished session.
type Summary struct {
	// StepsTaken is the number of accepted moves.
	StepsTaken int
	// Path holds the rooms entered, in order.
	Path []string
}

// Summary returns the step count and a copy of the path.
//
// Postcondition: Mutating the returned slice does not affect the State.
func (s *State) Summary() Summary {
	path := make([]string, len(s.path))
	copy(path, s.path)
	return Summary{
		StepsTaken: s.steps,
		Path:       path,
	}
}

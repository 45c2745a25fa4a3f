// Package engine drives a traversal session: it walks the persisted room
// records one choice at a time until the player reaches the end room.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/config"
	"github.com/cory-johannsen/starquest/internal/game/player"
	"github.com/cory-johannsen/starquest/internal/game/world"
	"github.com/cory-johannsen/starquest/internal/store"
)

// ErrSessionOver is returned by SubmitChoice after the end room was reached.
var ErrSessionOver = errors.New("engine: session already won")

// Status is the session state machine. A session starts Playing and moves to
// Won exactly once, on entering the end room.
type Status int

const (
	Playing Status = iota
	Won
)

// Move reports the outcome of a single submitted choice.
type Move struct {
	// Advanced is false when the input matched none of the offered
	// connections. The session state is then unchanged.
	Advanced bool
	// Room is the canonical name of the room entered, when Advanced.
	Room string
}

// Engine evaluates choices against the current room's stored record. The
// room graph is never held in memory during play: each accepted move
// re-reads the next room from the store, so the records are the single
// source of truth.
type Engine struct {
	records store.Store
	state   *player.State
	match   Matcher
	logger  *zap.Logger

	current store.Record
	status  Status
}

// New loads the start room's record and returns an Engine ready to play.
//
// Precondition: startRoom must have been persisted to records.
// Postcondition: Status() is Playing and CurrentRoom() is the start room.
func New(ctx context.Context, records store.Store, state *player.State, startRoom string, mode string, logger *zap.Logger) (*Engine, error) {
	rec, err := records.Get(ctx, startRoom)
	if err != nil {
		return nil, fmt.Errorf("loading start room %q: %w", startRoom, err)
	}

	match := MatchLegacyPrefix
	if mode == config.MatchExact {
		match = MatchExact
	}

	logger.Info("session started",
		zap.String("session_id", state.ID()),
		zap.String("start_room", rec.Name),
		zap.String("match_mode", mode))

	return &Engine{
		records: records,
		state:   state,
		match:   match,
		logger:  logger,
		current: rec,
		status:  Playing,
	}, nil
}

// Status returns the current session status.
func (e *Engine) Status() Status {
	return e.status
}

// CurrentRoom returns the record of the room the player is in.
func (e *Engine) CurrentRoom() store.Record {
	return e.current
}

// PresentChoices returns the current room's connections in stored order.
// Calling it repeatedly between moves always yields the same list.
func (e *Engine) PresentChoices() []string {
	out := make([]string, len(e.current.Connections))
	copy(out, e.current.Connections)
	return out
}

// SubmitChoice evaluates one line of player input. A rejected input returns
// Move{Advanced: false} with a nil error and leaves the session untouched.
// An accepted input re-reads the chosen room's record, appends it to the
// path and, if the room is the end room, moves the session to Won.
//
// Postcondition: On a non-nil error the session state is unchanged. A store
// read failure is fatal to the session and is returned as the error.
func (e *Engine) SubmitChoice(ctx context.Context, input string) (Move, error) {
	if e.status == Won {
		return Move{}, ErrSessionOver
	}

	input = strings.TrimSpace(input)
	var chosen string
	for _, name := range e.current.Connections {
		if e.match(input, name) {
			chosen = name
			break
		}
	}
	if chosen == "" {
		e.logger.Debug("choice rejected",
			zap.String("session_id", e.state.ID()),
			zap.String("input", input),
			zap.String("room", e.current.Name))
		return Move{Advanced: false}, nil
	}

	next, err := e.records.Get(ctx, chosen)
	if err != nil {
		return Move{}, fmt.Errorf("loading room %q: %w", chosen, err)
	}
	if err := e.state.RecordStep(next.Name); err != nil {
		return Move{}, err
	}
	e.current = next
	if next.Type == world.EndRoom {
		e.status = Won
		e.logger.Info("end room reached",
			zap.String("session_id", e.state.ID()),
			zap.Int("steps", e.state.StepsTaken()))
	}

	e.logger.Debug("moved",
		zap.String("session_id", e.state.ID()),
		zap.String("room", next.Name),
		zap.Int("steps", e.state.StepsTaken()))
	return Move{Advanced: true, Room: next.Name}, nil
}

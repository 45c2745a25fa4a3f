package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/game/player"
)

// ErrInputClosed is returned when the input stream ends before the player
// reaches the end room.
var ErrInputClosed = errors.New("engine: input closed before the end room was reached")

// Session couples an Engine to a line-oriented input and output stream. One
// Session serves exactly one player.
type Session struct {
	engine *Engine
	state  *player.State
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

// NewSession wires an engine to its I/O streams. in is read one line per
// turn; prompts and messages are written to out.
func NewSession(e *Engine, state *player.State, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	return &Session{
		engine: e,
		state:  state,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run plays the session to completion: prompt, read a line, evaluate,
// repeat until the end room is reached, then print the victory summary.
//
// Postcondition: Returns the session summary, or an error when input ends
// early, the context is cancelled, or a room record cannot be read.
func (s *Session) Run(ctx context.Context) (player.Summary, error) {
	for s.engine.Status() == Playing {
		if err := ctx.Err(); err != nil {
			return player.Summary{}, err
		}

		if _, err := io.WriteString(s.out, RenderPrompt(s.engine.CurrentRoom())); err != nil {
			return player.Summary{}, fmt.Errorf("writing prompt: %w", err)
		}

		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return player.Summary{}, fmt.Errorf("reading input: %w", err)
			}
			return player.Summary{}, ErrInputClosed
		}

		move, err := s.engine.SubmitChoice(ctx, s.in.Text())
		if err != nil {
			return player.Summary{}, err
		}
		if !move.Advanced {
			if _, err := io.WriteString(s.out, RenderReject()); err != nil {
				return player.Summary{}, fmt.Errorf("writing message: %w", err)
			}
		}
	}

	sum := s.state.Summary()
	if _, err := io.WriteString(s.out, RenderVictory(sum)); err != nil {
		return player.Summary{}, fmt.Errorf("writing summary: %w", err)
	}
	return sum, nil
}

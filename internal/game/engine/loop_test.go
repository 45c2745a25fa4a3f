package engine_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/config"
	"github.com/cory-johannsen/starquest/internal/game/engine"
	"github.com/cory-johannsen/starquest/internal/game/player"
	"github.com/cory-johannsen/starquest/internal/game/world"
	"github.com/cory-johannsen/starquest/internal/store"
)

func newTestSession(t *testing.T, recs *memStore, input string) (*engine.Session, *bytes.Buffer, *player.State) {
	t.Helper()
	state := player.NewState(0)
	e, err := engine.New(context.Background(), recs, state, "Conference", config.MatchPrefix, zap.NewNop())
	require.NoError(t, err)
	var out bytes.Buffer
	return engine.NewSession(e, state, strings.NewReader(input), &out, zap.NewNop()), &out, state
}

func TestSessionRun_PlaysToVictory(t *testing.T) {
	sess, out, _ := newTestSession(t, testWorld(), "Xyz\nBri\nShuttlebay\n")

	sum, err := sess.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.StepsTaken)
	assert.Equal(t, []string{"Bridge", "Shuttlebay"}, sum.Path)

	text := out.String()
	assert.Contains(t, text, "CURRENT LOCATION: Conference")
	assert.Contains(t, text, "POSSIBLE CONNECTIONS: Lounge, Bridge, Lab.")
	assert.Contains(t, text, "WHERE TO? >")
	assert.Contains(t, text, "HUH? I DON'T UNDERSTAND THAT ROOM. TRY AGAIN.")
	assert.Contains(t, text, "CURRENT LOCATION: Bridge")
	assert.Contains(t, text, "YOU HAVE FOUND THE END ROOM. CONGRATULATIONS!")
	assert.Contains(t, text, "YOU TOOK 2 STEPS. YOUR PATH TO VICTORY WAS:\nBridge\nShuttlebay\n")
}

func TestSessionRun_RepromptsAfterReject(t *testing.T) {
	sess, out, state := newTestSession(t, testWorld(), "Nope\nAlso nope\nBridge\nShuttlebay\n")

	_, err := sess.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, state.StepsTaken(), "rejected inputs must not count as steps")
	assert.Equal(t, 2, strings.Count(out.String(), "HUH? I DON'T UNDERSTAND THAT ROOM. TRY AGAIN."))
}

func TestSessionRun_InputClosed(t *testing.T) {
	sess, _, _ := newTestSession(t, testWorld(), "Bridge\n")

	_, err := sess.Run(context.Background())
	assert.ErrorIs(t, err, engine.ErrInputClosed)
}

func TestSessionRun_ContextCancelled(t *testing.T) {
	sess, _, _ := newTestSession(t, testWorld(), "Bridge\nShuttlebay\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sess.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionRun_StoreFailure(t *testing.T) {
	recs := testWorld()
	recs.failOn = "Bridge"
	sess, _, _ := newTestSession(t, recs, "Bridge\n")

	_, err := sess.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bridge")
}

func TestRenderPrompt(t *testing.T) {
	rec := store.Record{
		Name:        "Bridge",
		Connections: []string{"Lab", "Cargo", "Sickbay"},
		Type:        world.MidRoom,
	}
	want := "\nCURRENT LOCATION: Bridge\nPOSSIBLE CONNECTIONS: Lab, Cargo, Sickbay.\nWHERE TO? >"
	assert.Equal(t, want, engine.RenderPrompt(rec))
}

func TestRenderVictory(t *testing.T) {
	sum := player.Summary{StepsTaken: 2, Path: []string{"Bridge", "Shuttlebay"}}
	want := "\nYOU HAVE FOUND THE END ROOM. CONGRATULATIONS!\n" +
		"YOU TOOK 2 STEPS. YOUR PATH TO VICTORY WAS:\n" +
		"Bridge\nShuttlebay\n"
	assert.Equal(t, want, engine.RenderVictory(sum))
}

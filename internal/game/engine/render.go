package engine

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/starquest/internal/game/player"
	"github.com/cory-johannsen/starquest/internal/store"
)

const (
	promptSuffix  = ".\nWHERE TO? >"
	rejectLine    = "\nHUH? I DON'T UNDERSTAND THAT ROOM. TRY AGAIN.\n"
	victoryBanner = "\nYOU HAVE FOUND THE END ROOM. CONGRATULATIONS!\n"
)

// RenderPrompt formats the per-turn screen: the current location, its
// connections in stored order, and the input prompt. The prompt line has no
// trailing newline so the cursor sits after the ">".
func RenderPrompt(rec store.Record) string {
	var b strings.Builder
	b.WriteString("\nCURRENT LOCATION: ")
	b.WriteString(rec.Name)
	b.WriteString("\nPOSSIBLE CONNECTIONS: ")
	b.WriteString(strings.Join(rec.Connections, ", "))
	b.WriteString(promptSuffix)
	return b.String()
}

// RenderReject is the message for input that matched no connection.
func RenderReject() string {
	return rejectLine
}

// RenderVictory formats the congratulations banner and the path summary.
func RenderVictory(sum player.Summary) string {
	var b strings.Builder
	b.WriteString(victoryBanner)
	fmt.Fprintf(&b, "YOU TOOK %d STEPS. YOUR PATH TO VICTORY WAS:\n", sum.StepsTaken)
	for _, name := range sum.Path {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/game/rng"
)

// AssignTypes labels one room StartRoom, one distinct room EndRoom, and all
// others MidRoom. The end room is redrawn on collision with the start room.
//
// Precondition: g must hold at least two rooms; src and logger must be non-nil.
// Postcondition: Exactly one StartRoom and one EndRoom, and they differ.
func AssignTypes(g *Graph, src rng.Source, logger *zap.Logger) error {
	rooms := g.Rooms()
	if len(rooms) < 2 {
		return fmt.Errorf("assigning types: need at least 2 rooms, got %d", len(rooms))
	}

	startIdx := src.Intn(len(rooms))

	endIdx := startIdx
	for retry := 0; endIdx == startIdx; retry++ {
		if retry >= typeRetryLimit {
			return fmt.Errorf("choosing end room: %w", ErrInfeasible)
		}
		endIdx = src.Intn(len(rooms))
	}

	for i, r := range rooms {
		switch i {
		case startIdx:
			r.Type = StartRoom
		case endIdx:
			r.Type = EndRoom
		default:
			r.Type = MidRoom
		}
	}

	logger.Info("room types assigned",
		zap.String("start", rooms[startIdx].Name),
		zap.String("end", rooms[endIdx].Name),
	)
	return nil
}

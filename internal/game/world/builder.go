package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/config"
	"github.com/cory-johannsen/starquest/internal/game/rng"
)

// ErrInfeasible is returned when a rejection-sampling loop exhausts its retry
// ceiling. Under honest randomness this never happens with the stock
// parameters; it guards against degenerate sources (a test source returning a
// constant, say) spinning forever.
var ErrInfeasible = errors.New("world: generation infeasible")

// Retry ceilings for the rejection-sampling loops. Generous relative to the
// 7-room universe: hitting one means the random source is not making progress.
const (
	selectRetryLimit = 1000
	edgeRetryLimit   = 1000
	typeRetryLimit   = 1000

	// regenerateLimit bounds full rebuilds when a connected graph is required.
	// Disconnection at min degree 3 on 7 rooms is already rare; 25 rebuilds
	// not producing one means something is wrong with the source.
	regenerateLimit = 25
)

// Builder generates random room graphs under degree constraints.
type Builder struct {
	cfg    config.GameConfig
	src    rng.Source
	logger *zap.Logger
}

// NewBuilder creates a Builder.
//
// Precondition: cfg must have passed config validation; src and logger must be non-nil.
func NewBuilder(cfg config.GameConfig, src rng.Source, logger *zap.Logger) *Builder {
	return &Builder{cfg: cfg, src: src, logger: logger}
}

// Build selects cfg.Rooms distinct rooms from the bank, assigns each a random
// target degree in [cfg.MinConnections, cfg.MaxConnections], and wires
// symmetric edges until every room meets its target. When
// cfg.RequireConnected is set, disconnected results are discarded and
// regenerated up to regenerateLimit times.
//
// Postcondition: The returned graph satisfies Graph.Validate; every room's
// degree is in [cfg.MinConnections, cfg.MaxConnections].
func (b *Builder) Build(bank Bank) (*Graph, error) {
	if err := bank.Validate(b.cfg.Rooms); err != nil {
		return nil, fmt.Errorf("validating bank: %w", err)
	}

	for attempt := 1; ; attempt++ {
		g, err := b.generate(bank)
		if err != nil {
			return nil, err
		}
		if !b.cfg.RequireConnected || g.Connected() {
			b.logger.Info("world generated",
				zap.Int("rooms", len(g.Rooms())),
				zap.Int("attempt", attempt),
			)
			return g, nil
		}
		b.logger.Debug("generated graph is disconnected, regenerating",
			zap.Int("attempt", attempt),
		)
		if attempt >= regenerateLimit {
			return nil, fmt.Errorf("no connected graph after %d attempts: %w", attempt, ErrInfeasible)
		}
	}
}

// generate performs one full selection and wiring pass.
func (b *Builder) generate(bank Bank) (*Graph, error) {
	rooms, err := b.selectRooms(bank)
	if err != nil {
		return nil, err
	}

	g, err := NewGraph(rooms, b.cfg.MinConnections, b.cfg.MaxConnections)
	if err != nil {
		return nil, err
	}

	if err := b.wire(rooms); err != nil {
		return nil, err
	}
	return g, nil
}

// selectRooms draws cfg.Rooms distinct bank entries by rejection sampling,
// in the order chosen, each with a uniform random target degree.
func (b *Builder) selectRooms(bank Bank) ([]*Room, error) {
	count := b.cfg.Rooms
	rooms := make([]*Room, 0, count)
	chosen := make(map[int]bool, count)
	spread := b.cfg.MaxConnections - b.cfg.MinConnections + 1

	for i := 0; i < count; i++ {
		idx := -1
		for retry := 0; ; retry++ {
			if retry >= selectRetryLimit {
				return nil, fmt.Errorf("selecting room %d: %w", i, ErrInfeasible)
			}
			idx = b.src.Intn(len(bank))
			if !chosen[idx] {
				break
			}
		}
		chosen[idx] = true

		target := b.cfg.MinConnections + b.src.Intn(spread)
		rooms = append(rooms, &Room{
			Name:        bank[idx],
			Target:      target,
			Connections: make([]string, 0, b.cfg.MaxConnections),
		})
		b.logger.Debug("room selected",
			zap.String("room", bank[idx]),
			zap.Int("target_degree", target),
		)
	}
	return rooms, nil
}

// wire adds edges until every room has reached its target degree. Rooms
// already satisfied as a side effect of earlier rooms linking to them are
// skipped.
func (b *Builder) wire(rooms []*Room) error {
	for _, r := range rooms {
		needed := r.Target - r.Degree()
		if needed <= 0 {
			continue
		}
		for j := 0; j < needed; j++ {
			if err := b.addEdgeFrom(r, rooms); err != nil {
				return err
			}
		}
	}
	return nil
}

// addEdgeFrom draws random candidates until one accepts an edge from r.
func (b *Builder) addEdgeFrom(r *Room, rooms []*Room) error {
	for retry := 0; retry < edgeRetryLimit; retry++ {
		candidate := rooms[b.src.Intn(len(rooms))]
		if candidate == r {
			continue
		}
		if b.tryConnect(r, candidate) {
			return nil
		}
	}
	return fmt.Errorf("wiring room %q: %w", r.Name, ErrInfeasible)
}

// tryConnect attempts to create the symmetric edge a-b.
//
// The elasticity rule: a candidate that has already met its own target but
// sits below the hard cap has its target raised by one to accept the forced
// edge. Without it, rooms wired late could be starved below the minimum
// degree by earlier rooms' random choices.
//
// Postcondition: Returns true and adds the edge to both rooms, or returns
// false (already connected, or b at the hard cap) leaving both unchanged.
func (b *Builder) tryConnect(from, to *Room) bool {
	if from.ConnectedTo(to.Name) {
		return false
	}
	if to.Degree() == b.cfg.MaxConnections {
		return false
	}
	if to.Degree() == to.Target {
		to.Target++
		b.logger.Debug("target degree raised",
			zap.String("room", to.Name),
			zap.Int("target_degree", to.Target),
		)
	}

	from.Connections = append(from.Connections, to.Name)
	to.Connections = append(to.Connections, from.Name)
	b.logger.Debug("edge created",
		zap.String("from", from.Name),
		zap.String("to", to.Name),
	)
	return true
}

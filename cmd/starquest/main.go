// Package main provides the starquest binary: it generates a random room
// graph, persists the rooms, and plays the traversal game on the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/starquest/internal/config"
	"github.com/cory-johannsen/starquest/internal/game/engine"
	"github.com/cory-johannsen/starquest/internal/game/player"
	"github.com/cory-johannsen/starquest/internal/game/rng"
	"github.com/cory-johannsen/starquest/internal/game/world"
	"github.com/cory-johannsen/starquest/internal/observability"
	"github.com/cory-johannsen/starquest/internal/server"
	"github.com/cory-johannsen/starquest/internal/store"
	"github.com/cory-johannsen/starquest/internal/store/file"
	"github.com/cory-johannsen/starquest/internal/store/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	seed := flag.Int64("seed", 0, "random seed for a reproducible game; 0 = crypto randomness")
	flag.Parse()

	ctx := context.Background()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("game failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "starquest: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	start := time.Now()

	src := rng.NewCryptoSource()
	if cfg.Game.Seed != 0 {
		src = rng.NewSeeded(cfg.Game.Seed)
		logger.Info("using seeded randomness", zap.Int64("seed", cfg.Game.Seed))
	}

	bank := world.DefaultBank()
	if cfg.Game.BankFile != "" {
		loaded, err := world.LoadBankFromFile(cfg.Game.BankFile)
		if err != nil {
			return fmt.Errorf("loading room bank: %w", err)
		}
		bank = loaded
	}

	// Generate the world.
	buildStart := time.Now()
	graph, err := world.NewBuilder(cfg.Game, src, logger).Build(bank)
	if err != nil {
		return fmt.Errorf("building room graph: %w", err)
	}
	if err := world.AssignTypes(graph, src, logger); err != nil {
		return fmt.Errorf("assigning room types: %w", err)
	}
	logger.Info("world generated",
		zap.Int("rooms", len(graph.Rooms())),
		zap.String("start_room", graph.Start().Name),
		zap.String("end_room", graph.End().Name),
		zap.Duration("elapsed", time.Since(buildStart)),
	)

	state := player.NewState(cfg.Game.MaxPath)

	records, cleanup, err := openStore(ctx, cfg, state.ID(), logger)
	if err != nil {
		return err
	}

	// Persist every room before play begins. The records, not the in-memory
	// graph, are what the engine walks.
	for _, room := range graph.Rooms() {
		if err := records.Put(ctx, store.RecordFromRoom(room)); err != nil {
			cleanup()
			return fmt.Errorf("persisting room %q: %w", room.Name, err)
		}
	}
	logger.Info("rooms persisted",
		zap.String("session_id", state.ID()),
		zap.String("backend", cfg.Store.Backend),
	)

	eng, err := engine.New(ctx, records, state, graph.Start().Name, cfg.Game.Match, logger)
	if err != nil {
		cleanup()
		return err
	}
	sess := engine.NewSession(eng, state, os.Stdin, os.Stdout, logger)

	// The lifecycle guarantees record cleanup whether the game is won,
	// fails, or is interrupted.
	lc := server.NewLifecycle(logger)
	lc.Add("session", &server.FuncService{
		StartFn: func() error {
			_, err := sess.Run(ctx)
			return err
		},
		StopFn: func() {},
	})
	lc.Add("record-cleanup", &server.FuncService{StopFn: cleanup})

	if err := lc.Run(ctx); err != nil {
		return err
	}

	logger.Info("game over",
		zap.String("session_id", state.ID()),
		zap.Int("steps", state.StepsTaken()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// openStore builds the configured record store and a cleanup func that
// removes the session's records and releases the backend.
func openStore(ctx context.Context, cfg config.Config, sessionID string, logger *zap.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		if err := postgres.Migrate(cfg.Database.DSN()); err != nil {
			return nil, nil, fmt.Errorf("migrating schema: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		rs := postgres.NewRoomStore(pool.DB(), sessionID)
		cleanup := func() {
			if err := rs.RemoveAll(context.Background()); err != nil {
				logger.Warn("removing session records", zap.Error(err))
			}
			pool.Close()
		}
		return rs, cleanup, nil

	case config.BackendFile:
		fs, err := file.New(cfg.Store.Dir, sessionID, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("creating session directory: %w", err)
		}
		cleanup := func() {
			if err := fs.RemoveAll(context.Background()); err != nil {
				logger.Warn("removing session directory", zap.Error(err))
			}
		}
		return fs, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Package main provides the MCP battle server binary that exposes the
// pokédex and the battle simulator over JSON-RPC on stdio.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"pokearena/internal/config"
	"pokearena/internal/game/rng"
	"pokearena/internal/game/typechart"
	"pokearena/internal/mcpserver"
	"pokearena/internal/observability"
	"pokearena/internal/pokedex"
	"pokearena/internal/pokedex/pokeapi"
	"pokearena/internal/server"
	"pokearena/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	chart, err := loadChart(cfg.Battle)
	if err != nil {
		logger.Fatal("loading type chart", zap.Error(err))
	}

	fetcher := pokeapi.NewClient(cfg.PokeAPI, logger)

	var store pokedex.Store
	var pool *postgres.Pool
	if cfg.Database.Enabled {
		dbStart := time.Now()
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		store = postgres.NewPokedexRepository(pool.DB())
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	}

	service := pokedex.NewService(fetcher, store, logger)
	srv := mcpserver.New(service, chart, rng.NewCryptoSource(), cfg.Battle.MaxTurns, logger)

	logger.Info("mcp server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Bool("persistent_cache", store != nil),
	)

	// Cancelling runCtx when Serve returns lets a clean client disconnect
	// shut the whole process down.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("mcp", &server.FuncService{
		StartFn: func() error {
			defer cancel()
			return srv.Serve(runCtx)
		},
		StopFn: cancel,
	})
	if pool != nil {
		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func() error {
				for {
					select {
					case <-runCtx.Done():
						return nil
					case <-time.After(30 * time.Second):
					}
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			},
			StopFn: func() {
				pool.Close()
			},
		})
	}

	if err := lifecycle.Run(runCtx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func loadChart(cfg config.BattleConfig) (*typechart.Chart, error) {
	if cfg.TypeChartPath == "" {
		return typechart.New(), nil
	}
	return typechart.LoadFile(cfg.TypeChartPath)
}

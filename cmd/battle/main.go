// Package main provides a one-shot battle CLI: it resolves two pokémon,
// simulates a battle between them, and prints the battle log as markdown.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"pokearena/internal/config"
	"pokearena/internal/game/battle"
	"pokearena/internal/game/rng"
	"pokearena/internal/game/typechart"
	"pokearena/internal/mcpserver"
	"pokearena/internal/observability"
	"pokearena/internal/pokedex"
	"pokearena/internal/pokedex/pokeapi"
	"pokearena/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Int64("seed", 0, "seed for a reproducible battle; 0 picks random outcomes")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: battle [flags] <pokemon1> <pokemon2>")
		flag.PrintDefaults()
		os.Exit(2)
	}

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
	if cfg.Database.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		store = postgres.NewPokedexRepository(pool.DB())
	}
	service := pokedex.NewService(fetcher, store, logger)

	p1 := resolve(ctx, service, flag.Arg(0))
	p2 := resolve(ctx, service, flag.Arg(1))

	var src rng.Source = rng.NewCryptoSource()
	if *seed != 0 {
		src = rng.NewSeededSource(*seed)
	}

	sim := battle.NewSimulator(chart, src, logger)
	sim.SetMaxTurns(cfg.Battle.MaxTurns)
	outcome := sim.Run(p1, p2)

	fmt.Println(mcpserver.RenderBattle(p1, p2, outcome))
}

func resolve(ctx context.Context, service *pokedex.Service, identifier string) *pokedex.Pokemon {
	p, err := service.Get(ctx, identifier)
	if errors.Is(err, pokedex.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "unknown pokemon %q\n", identifier)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolving %q: %v\n", identifier, err)
		os.Exit(1)
	}
	return p
}

func loadChart(cfg config.BattleConfig) (*typechart.Chart, error) {
	if cfg.TypeChartPath == "" {
		return typechart.New(), nil
	}
	return typechart.LoadFile(cfg.TypeChartPath)
}

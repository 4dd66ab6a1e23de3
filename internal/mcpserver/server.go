// Package mcpserver exposes the pokédex and the battle simulator as an MCP
// server speaking JSON-RPC over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"pokearena/internal/game/rng"
	"pokearena/internal/game/typechart"
	"pokearena/internal/pokedex"
)

const (
	serverName    = "pokemon-battle-server"
	serverVersion = "1.0.0"
)

// Server wires the pokédex service and the battle engine into MCP tools
// and resources.
type Server struct {
	mcp      *mcp.Server
	service  *pokedex.Service
	chart    *typechart.Chart
	src      rng.Source
	maxTurns int
	logger   *zap.Logger
}

// New creates a Server over the given dependencies. src is the randomness
// used for battles without an explicit seed.
//
// Precondition: service, chart, src, and logger must be non-nil; maxTurns > 0.
func New(service *pokedex.Service, chart *typechart.Chart, src rng.Source, maxTurns int, logger *zap.Logger) *Server {
	s := &Server{
		service:  service,
		chart:    chart,
		src:      src,
		maxTurns: maxTurns,
		logger:   logger,
	}

	srv := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_pokemon",
		Description: "Fetches complete data for a pokemon by name or pokedex number",
	}, s.handleGetPokemon)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "battle_simulate",
		Description: "Simulates a full battle between two pokemon and returns the battle log",
	}, s.handleBattleSimulate)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_type_effectiveness",
		Description: "Computes the type effectiveness multiplier of an attacking type against defending types",
	}, s.handleTypeEffectiveness)

	srv.AddResource(&mcp.Resource{
		URI:         typesResourceURI,
		Name:        "Type Effectiveness Chart",
		Description: "The full type effectiveness chart used by the battle engine",
		MIMEType:    "application/json",
	}, s.handleTypesResource)
	srv.AddResource(&mcp.Resource{
		URI:         databaseResourceURI,
		Name:        "Pokemon Database",
		Description: "How to query pokemon data through this server",
		MIMEType:    "application/json",
	}, s.handleDatabaseResource)

	s.mcp = srv
	return s
}

// Serve runs the server on stdio until the context ends or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting",
		zap.String("name", serverName),
		zap.String("version", serverVersion),
	)
	return s.serve(ctx, &mcp.StdioTransport{})
}

func (s *Server) serve(ctx context.Context, transport mcp.Transport) error {
	return s.mcp.Run(ctx, transport)
}

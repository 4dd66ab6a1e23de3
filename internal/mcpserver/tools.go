package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"pokearena/internal/game/battle"
	"pokearena/internal/game/rng"
	"pokearena/internal/pokedex"
)

// GetPokemonInput is the request for the get_pokemon tool.
type GetPokemonInput struct {
	Name string `json:"name" jsonschema:"pokemon name or pokedex number"`
}

// GetPokemonResult carries the resolved descriptor.
type GetPokemonResult struct {
	Pokemon *pokedex.Pokemon `json:"pokemon,omitempty"`
}

// BattleSimulateInput is the request for the battle_simulate tool.
type BattleSimulateInput struct {
	Pokemon1 string `json:"pokemon1" jsonschema:"first pokemon name or pokedex number"`
	Pokemon2 string `json:"pokemon2" jsonschema:"second pokemon name or pokedex number"`
	Seed     *int64 `json:"seed,omitempty" jsonschema:"optional seed for a reproducible battle"`
}

// BattleSimulateResult is the structured outcome of a simulated battle.
type BattleSimulateResult struct {
	BattleID string          `json:"battle_id"`
	Winner   string          `json:"winner,omitempty"`
	Draw     bool            `json:"draw"`
	Turns    int             `json:"turns"`
	Pokemon1 battle.Snapshot `json:"pokemon1"`
	Pokemon2 battle.Snapshot `json:"pokemon2"`
}

// TypeEffectivenessInput is the request for the get_type_effectiveness tool.
type TypeEffectivenessInput struct {
	AttackingType  string   `json:"attacking_type" jsonschema:"the move's type"`
	DefendingTypes []string `json:"defending_types" jsonschema:"the defender's one or two types"`
}

// TypeEffectivenessResult carries the combined multiplier and a verdict.
type TypeEffectivenessResult struct {
	AttackingType  string   `json:"attacking_type"`
	DefendingTypes []string `json:"defending_types"`
	Multiplier     float64  `json:"multiplier"`
	Verdict        string   `json:"verdict"`
}

func (s *Server) handleGetPokemon(ctx context.Context, _ *mcp.CallToolRequest, input GetPokemonInput) (*mcp.CallToolResult, GetPokemonResult, error) {
	p, err := s.service.Get(ctx, input.Name)
	if errors.Is(err, pokedex.ErrNotFound) {
		return notFoundResult(input.Name), GetPokemonResult{}, nil
	}
	if err != nil {
		return nil, GetPokemonResult{}, fmt.Errorf("resolving pokemon %q: %w", input.Name, err)
	}

	return textResult(RenderPokemon(p)), GetPokemonResult{Pokemon: p}, nil
}

func (s *Server) handleBattleSimulate(ctx context.Context, _ *mcp.CallToolRequest, input BattleSimulateInput) (*mcp.CallToolResult, BattleSimulateResult, error) {
	p1, err := s.service.Get(ctx, input.Pokemon1)
	if errors.Is(err, pokedex.ErrNotFound) {
		return notFoundResult(input.Pokemon1), BattleSimulateResult{}, nil
	}
	if err != nil {
		return nil, BattleSimulateResult{}, fmt.Errorf("resolving pokemon %q: %w", input.Pokemon1, err)
	}
	p2, err := s.service.Get(ctx, input.Pokemon2)
	if errors.Is(err, pokedex.ErrNotFound) {
		return notFoundResult(input.Pokemon2), BattleSimulateResult{}, nil
	}
	if err != nil {
		return nil, BattleSimulateResult{}, fmt.Errorf("resolving pokemon %q: %w", input.Pokemon2, err)
	}

	src := s.src
	if input.Seed != nil {
		src = rng.NewSeededSource(*input.Seed)
	}

	sim := battle.NewSimulator(s.chart, src, s.logger)
	sim.SetMaxTurns(s.maxTurns)
	outcome := sim.Run(p1, p2)

	s.logger.Info("battle simulated",
		zap.String("battle_id", outcome.ID.String()),
		zap.String("pokemon1", p1.Name),
		zap.String("pokemon2", p2.Name),
		zap.String("winner", outcome.Winner),
	)

	result := BattleSimulateResult{
		BattleID: outcome.ID.String(),
		Winner:   outcome.Winner,
		Draw:     outcome.Draw,
		Turns:    outcome.Turns,
		Pokemon1: outcome.Sides[0],
		Pokemon2: outcome.Sides[1],
	}
	return textResult(RenderBattle(p1, p2, outcome)), result, nil
}

func (s *Server) handleTypeEffectiveness(ctx context.Context, _ *mcp.CallToolRequest, input TypeEffectivenessInput) (*mcp.CallToolResult, TypeEffectivenessResult, error) {
	multiplier := s.chart.Effectiveness(
		pokedex.NormalizeIdentifier(input.AttackingType),
		normalizeTypes(input.DefendingTypes),
	)

	result := TypeEffectivenessResult{
		AttackingType:  input.AttackingType,
		DefendingTypes: input.DefendingTypes,
		Multiplier:     multiplier,
		Verdict:        effectivenessVerdict(multiplier),
	}
	text := fmt.Sprintf("%s vs %v: %.2gx damage (%s). %s",
		input.AttackingType, input.DefendingTypes, multiplier, result.Verdict,
		effectivenessAdvice(multiplier))
	return textResult(text), result, nil
}

func effectivenessAdvice(multiplier float64) string {
	switch {
	case multiplier == 0:
		return "Pick a different attacking type; this one cannot connect."
	case multiplier < 1:
		return "Consider a different attacking type for better damage."
	case multiplier > 1:
		return "Moves of this type are a strong choice here."
	default:
		return "No advantage either way."
	}
}

func normalizeTypes(types []string) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = pokedex.NormalizeIdentifier(t)
	}
	return out
}

func effectivenessVerdict(multiplier float64) string {
	switch {
	case multiplier == 0:
		return "no effect"
	case multiplier < 1:
		return "not very effective"
	case multiplier > 1:
		return "super effective"
	default:
		return "neutral"
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func notFoundResult(identifier string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{
			Text: fmt.Sprintf("Could not find pokemon %q", identifier),
		}},
		IsError: true,
	}
}

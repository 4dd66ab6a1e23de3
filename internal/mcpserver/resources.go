package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	typesResourceURI    = "pokedex://types"
	databaseResourceURI = "pokedex://database"
)

func (s *Server) handleTypesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	payload := struct {
		Types      []string                      `json:"types"`
		Deviations map[string]map[string]float64 `json:"deviations"`
		Note       string                        `json:"note"`
	}{
		Types:      s.chart.Types(),
		Deviations: s.chart.Deviations(),
		Note:       "pairs not listed are neutral (1.0x); dual-type defenders multiply the two entries",
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal type chart: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      typesResourceURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func (s *Server) handleDatabaseResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	payload := struct {
		Description string   `json:"description"`
		Source      string   `json:"source"`
		Tools       []string `json:"tools"`
		Usage       string   `json:"usage"`
	}{
		Description: "Pokemon descriptors fetched on demand from PokeAPI and cached by this server",
		Source:      "https://pokeapi.co/api/v2",
		Tools:       []string{"get_pokemon", "battle_simulate", "get_type_effectiveness"},
		Usage:       "call get_pokemon with a name or pokedex number; battles accept an optional seed for reproducible results",
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal database info: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      databaseResourceURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

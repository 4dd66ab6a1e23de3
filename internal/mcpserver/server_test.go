package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pokearena/internal/game/rng"
	"pokearena/internal/game/typechart"
	"pokearena/internal/pokedex"
)

type mapFetcher struct {
	entries map[string]*pokedex.Pokemon
}

func (f *mapFetcher) Fetch(_ context.Context, identifier string) (*pokedex.Pokemon, error) {
	p, ok := f.entries[identifier]
	if !ok {
		return nil, pokedex.ErrNotFound
	}
	return p, nil
}

func fixturePikachu() *pokedex.Pokemon {
	return &pokedex.Pokemon{
		ID:        25,
		Name:      "pikachu",
		Types:     []string{"electric"},
		Stats:     pokedex.Stats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90},
		Abilities: []string{"static"},
		Moves: []pokedex.Move{
			{Name: "thunderbolt", Type: "electric", Category: pokedex.CategorySpecial, Power: 90, Accuracy: 100, PP: 15},
			{Name: "quick-attack", Type: "normal", Category: pokedex.CategoryPhysical, Power: 40, Accuracy: 100, PP: 30},
		},
	}
}

func fixtureSquirtle() *pokedex.Pokemon {
	return &pokedex.Pokemon{
		ID:        7,
		Name:      "squirtle",
		Types:     []string{"water"},
		Stats:     pokedex.Stats{HP: 44, Attack: 48, Defense: 65, SpecialAttack: 50, SpecialDefense: 64, Speed: 43},
		Abilities: []string{"torrent"},
		Moves: []pokedex.Move{
			{Name: "water-gun", Type: "water", Category: pokedex.CategorySpecial, Power: 40, Accuracy: 100, PP: 25},
		},
	}
}

// connect starts the server on an in-memory transport and returns a
// connected client session.
func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()

	fetcher := &mapFetcher{entries: map[string]*pokedex.Pokemon{
		"pikachu":  fixturePikachu(),
		"squirtle": fixtureSquirtle(),
	}}
	logger := zaptest.NewLogger(t)
	service := pokedex.NewService(fetcher, nil, logger)
	srv := New(service, typechart.New(), rng.NewSeededSource(7), 50, logger)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() {
		_ = srv.serve(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestServerListsTools(t *testing.T) {
	session := connect(t)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"get_pokemon", "battle_simulate", "get_type_effectiveness"}, names)
}

func TestGetPokemonTool(t *testing.T) {
	session := connect(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_pokemon",
		Arguments: map[string]any{"name": "Pikachu"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "Pikachu (#025)")
	assert.Contains(t, text, "Thunderbolt")
	assert.Contains(t, text, "Total: 320")

	structured, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok)
	pokemon, ok := structured["pokemon"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pikachu", pokemon["name"])
}

func TestGetPokemonToolNotFound(t *testing.T) {
	session := connect(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_pokemon",
		Arguments: map[string]any{"name": "missingno"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "missingno")
}

func TestBattleSimulateTool(t *testing.T) {
	session := connect(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "battle_simulate",
		Arguments: map[string]any{
			"pokemon1": "pikachu",
			"pokemon2": "squirtle",
			"seed":     42,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "# Pokemon Battle Arena")
	assert.Contains(t, text, "## Battle Log")
	assert.Contains(t, text, "## Conclusion")

	structured, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, structured["battle_id"])
	// Thunderbolt is super effective against a pure water type and pikachu
	// outspeeds; pikachu must win regardless of the random rolls.
	assert.Equal(t, "pikachu", structured["winner"])
	assert.Equal(t, false, structured["draw"])
}

func TestBattleSimulateSeedReproducible(t *testing.T) {
	session := connect(t)
	ctx := context.Background()

	run := func() map[string]any {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name: "battle_simulate",
			Arguments: map[string]any{
				"pokemon1": "pikachu",
				"pokemon2": "squirtle",
				"seed":     1234,
			},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)
		structured, ok := result.StructuredContent.(map[string]any)
		require.True(t, ok)
		return structured
	}

	first := run()
	second := run()

	assert.Equal(t, first["winner"], second["winner"])
	assert.Equal(t, first["turns"], second["turns"])
	assert.Equal(t, first["pokemon1"], second["pokemon1"])
	assert.Equal(t, first["pokemon2"], second["pokemon2"])
	assert.NotEqual(t, first["battle_id"], second["battle_id"])
}

func TestBattleSimulateToolNotFound(t *testing.T) {
	session := connect(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "battle_simulate",
		Arguments: map[string]any{
			"pokemon1": "pikachu",
			"pokemon2": "missingno",
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestTypeEffectivenessTool(t *testing.T) {
	session := connect(t)
	ctx := context.Background()

	cases := []struct {
		name       string
		attacking  string
		defending  []string
		multiplier float64
		verdict    string
	}{
		{"super effective", "electric", []string{"water"}, 2.0, "super effective"},
		{"stacked weakness", "electric", []string{"water", "flying"}, 4.0, "super effective"},
		{"immunity", "electric", []string{"ground"}, 0.0, "no effect"},
		{"resisted", "fire", []string{"water"}, 0.5, "not very effective"},
		{"neutral", "normal", []string{"fighting"}, 1.0, "neutral"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name: "get_type_effectiveness",
				Arguments: map[string]any{
					"attacking_type":  tc.attacking,
					"defending_types": tc.defending,
				},
			})
			require.NoError(t, err)
			require.False(t, result.IsError)

			structured, ok := result.StructuredContent.(map[string]any)
			require.True(t, ok)
			assert.InDelta(t, tc.multiplier, structured["multiplier"], 1e-9)
			assert.Equal(t, tc.verdict, structured["verdict"])
		})
	}
}

func TestTypesResource(t *testing.T) {
	session := connect(t)

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{
		URI: typesResourceURI,
	})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	content := result.Contents[0]
	assert.Equal(t, typesResourceURI, content.URI)
	assert.Equal(t, "application/json", content.MIMEType)
	for _, typ := range typechart.New().Types() {
		assert.Contains(t, content.Text, `"`+typ+`"`)
	}
}

func TestDatabaseResource(t *testing.T) {
	session := connect(t)

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{
		URI: databaseResourceURI,
	})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	content := result.Contents[0]
	assert.Equal(t, databaseResourceURI, content.URI)
	assert.Contains(t, content.Text, "pokeapi.co")
	assert.Contains(t, content.Text, "battle_simulate")
}

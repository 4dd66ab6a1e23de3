package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pokearena/internal/config"
	"pokearena/internal/pokedex"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/api/v2/pokemon/bulbasaur", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"id": 1,
			"name": "bulbasaur",
			"height": 7,
			"weight": 69,
			"stats": [
				{"base_stat": 45, "stat": {"name": "hp"}},
				{"base_stat": 49, "stat": {"name": "attack"}},
				{"base_stat": 49, "stat": {"name": "defense"}},
				{"base_stat": 65, "stat": {"name": "special-attack"}},
				{"base_stat": 65, "stat": {"name": "special-defense"}},
				{"base_stat": 45, "stat": {"name": "speed"}}
			],
			"types": [{"type": {"name": "grass"}}, {"type": {"name": "poison"}}],
			"abilities": [{"ability": {"name": "overgrow"}}],
			"moves": [
				{"move": {"name": "vine-whip", "url": "%[1]s/api/v2/move/22"}},
				{"move": {"name": "poison-powder", "url": "%[1]s/api/v2/move/77"}},
				{"move": {"name": "broken-move", "url": "%[1]s/api/v2/move/999"}},
				{"move": {"name": "over-limit", "url": "%[1]s/api/v2/move/33"}}
			],
			"sprites": {"front_default": "https://img.example/1.png"}
		}`, server.URL)
	})

	mux.HandleFunc("/api/v2/move/22", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "vine-whip",
			"type": {"name": "grass"},
			"damage_class": {"name": "physical"},
			"power": 45,
			"accuracy": 100,
			"pp": 25,
			"priority": 0,
			"meta": {"ailment": {"name": "none"}, "ailment_chance": 0}
		}`)
	})

	mux.HandleFunc("/api/v2/move/77", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "poison-powder",
			"type": {"name": "poison"},
			"damage_class": {"name": "status"},
			"power": null,
			"accuracy": 75,
			"pp": 35,
			"priority": 0,
			"meta": {"ailment": {"name": "poison"}, "ailment_chance": 0}
		}`)
	})

	mux.HandleFunc("/api/v2/move/999", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream hiccup", http.StatusInternalServerError)
	})

	mux.HandleFunc("/api/v2/move/33", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "over-limit",
			"type": {"name": "normal"},
			"damage_class": {"name": "physical"},
			"power": 40,
			"accuracy": null,
			"pp": 30,
			"priority": 0,
			"meta": {"ailment": {"name": "paralysis"}, "ailment_chance": 30}
		}`)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, baseURL string, moveLimit int) *Client {
	t.Helper()
	return NewClient(config.PokeAPIConfig{
		BaseURL:             baseURL + "/api/v2",
		Timeout:             5 * time.Second,
		MoveLimit:           moveLimit,
		DefaultStatusChance: 0.15,
	}, zaptest.NewLogger(t))
}

func TestFetchPokemon(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL, 15)

	p, err := client.Fetch(context.Background(), "bulbasaur")
	require.NoError(t, err)

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "bulbasaur", p.Name)
	assert.Equal(t, []string{"grass", "poison"}, p.Types)
	assert.Equal(t, 45, p.Stats.HP)
	assert.Equal(t, 65, p.Stats.SpecialAttack)
	assert.Equal(t, []string{"overgrow"}, p.Abilities)
	assert.Equal(t, 7, p.Height)
	assert.Equal(t, "https://img.example/1.png", p.SpriteURL)

	// The failing move is skipped, the rest survive.
	require.Len(t, p.Moves, 3)

	vine := p.Moves[0]
	assert.Equal(t, "vine-whip", vine.Name)
	assert.Equal(t, pokedex.CategoryPhysical, vine.Category)
	assert.Equal(t, 45, vine.Power)
	assert.Equal(t, 100, vine.Accuracy)
	assert.Nil(t, vine.Effect, "an ailment of none carries no effect")

	powder := p.Moves[1]
	assert.Equal(t, 0, powder.Power)
	assert.Equal(t, 75, powder.Accuracy)
	require.NotNil(t, powder.Effect)
	assert.Equal(t, pokedex.StatusPoison, powder.Effect.Status)
	// Status-category moves with an unspecified chance inflict for certain.
	assert.Equal(t, 1.0, powder.Effect.Chance)

	jolt := p.Moves[2]
	assert.Equal(t, "over-limit", jolt.Name)
	assert.Equal(t, 100, jolt.Accuracy, "null accuracy defaults to 100")
	require.NotNil(t, jolt.Effect)
	assert.Equal(t, pokedex.StatusParalysis, jolt.Effect.Status)
	assert.Equal(t, 0.3, jolt.Effect.Chance)
}

func TestFetchRespectsMoveLimit(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL, 2)

	p, err := client.Fetch(context.Background(), "bulbasaur")
	require.NoError(t, err)
	require.Len(t, p.Moves, 2)
	assert.Equal(t, "vine-whip", p.Moves[0].Name)
	assert.Equal(t, "poison-powder", p.Moves[1].Name)
}

func TestFetchNotFound(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL, 15)

	_, err := client.Fetch(context.Background(), "missingno")
	assert.ErrorIs(t, err, pokedex.ErrNotFound)
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL, 15)
	_, err := client.Fetch(context.Background(), "bulbasaur")
	require.Error(t, err)
	assert.NotErrorIs(t, err, pokedex.ErrNotFound)
}

func TestFetchContextCancelled(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL, 15)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Fetch(ctx, "bulbasaur")
	assert.Error(t, err)
}

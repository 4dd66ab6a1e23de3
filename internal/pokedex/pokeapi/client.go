// Package pokeapi implements the HTTP client for the upstream PokeAPI v2
// pokémon data source.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"pokearena/internal/config"
	"pokearena/internal/pokedex"
)

// Client fetches pokémon descriptors from PokeAPI. It resolves a pokémon's
// base payload plus detail payloads for its first MoveLimit moves; move
// fetch failures are logged and skipped so one bad move never sinks the
// whole descriptor.
type Client struct {
	baseURL             string
	httpClient          *http.Client
	moveLimit           int
	defaultStatusChance float64
	logger              *zap.Logger
}

// NewClient creates a Client from the PokeAPI configuration.
//
// Precondition: cfg must have passed config validation; logger must be non-nil.
func NewClient(cfg config.PokeAPIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:             cfg.BaseURL,
		httpClient:          &http.Client{Timeout: cfg.Timeout},
		moveLimit:           cfg.MoveLimit,
		defaultStatusChance: cfg.DefaultStatusChance,
		logger:              logger,
	}
}

// pokemonPayload mirrors the slice of the PokeAPI pokémon document we use.
type pokemonPayload struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
	Moves []struct {
		Move struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"move"`
	} `json:"moves"`
	Height  int `json:"height"`
	Weight  int `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

// movePayload mirrors the slice of the PokeAPI move document we use.
type movePayload struct {
	Name string `json:"name"`
	Type struct {
		Name string `json:"name"`
	} `json:"type"`
	DamageClass struct {
		Name string `json:"name"`
	} `json:"damage_class"`
	Power    *int `json:"power"`
	Accuracy *int `json:"accuracy"`
	PP       int  `json:"pp"`
	Priority int  `json:"priority"`
	Meta     *struct {
		Ailment struct {
			Name string `json:"name"`
		} `json:"ailment"`
		AilmentChance int `json:"ailment_chance"`
	} `json:"meta"`
}

// Fetch retrieves the descriptor for the pokémon with the given normalized
// identifier (name or numeric id).
//
// Postcondition: returns pokedex.ErrNotFound when the upstream has no such
// pokémon; any other failure is returned wrapped.
func (c *Client) Fetch(ctx context.Context, identifier string) (*pokedex.Pokemon, error) {
	var payload pokemonPayload
	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, identifier)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	p := &pokedex.Pokemon{
		ID:        payload.ID,
		Name:      payload.Name,
		Height:    payload.Height,
		Weight:    payload.Weight,
		SpriteURL: payload.Sprites.FrontDefault,
	}

	for _, s := range payload.Stats {
		switch s.Stat.Name {
		case "hp":
			p.Stats.HP = s.BaseStat
		case "attack":
			p.Stats.Attack = s.BaseStat
		case "defense":
			p.Stats.Defense = s.BaseStat
		case "special-attack":
			p.Stats.SpecialAttack = s.BaseStat
		case "special-defense":
			p.Stats.SpecialDefense = s.BaseStat
		case "speed":
			p.Stats.Speed = s.BaseStat
		}
	}
	for _, t := range payload.Types {
		p.Types = append(p.Types, t.Type.Name)
	}
	for _, a := range payload.Abilities {
		p.Abilities = append(p.Abilities, a.Ability.Name)
	}

	limit := c.moveLimit
	if limit > len(payload.Moves) {
		limit = len(payload.Moves)
	}
	for _, entry := range payload.Moves[:limit] {
		move, err := c.fetchMove(ctx, entry.Move.URL)
		if err != nil {
			c.logger.Warn("skipping move",
				zap.String("pokemon", payload.Name),
				zap.String("move", entry.Move.Name),
				zap.Error(err),
			)
			continue
		}
		p.Moves = append(p.Moves, move)
	}

	c.logger.Debug("fetched pokemon",
		zap.String("name", p.Name),
		zap.Int("id", p.ID),
		zap.Int("moves", len(p.Moves)),
	)
	return p, nil
}

func (c *Client) fetchMove(ctx context.Context, url string) (pokedex.Move, error) {
	var payload movePayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return pokedex.Move{}, err
	}

	move := pokedex.Move{
		Name:     payload.Name,
		Type:     payload.Type.Name,
		Category: pokedex.MoveCategory(payload.DamageClass.Name),
		Accuracy: 100,
		PP:       payload.PP,
		Priority: payload.Priority,
	}
	if payload.DamageClass.Name == "" {
		move.Category = pokedex.CategoryStatus
	}
	if payload.Power != nil {
		move.Power = *payload.Power
	}
	if payload.Accuracy != nil {
		move.Accuracy = *payload.Accuracy
	}
	move.Effect = c.statusEffect(payload, move)
	return move, nil
}

// statusEffect converts the move's ailment metadata into an explicit status
// effect. A reported chance of zero means the upstream left it unspecified:
// status-category moves then inflict with certainty, damaging moves with
// the configured default chance.
func (c *Client) statusEffect(payload movePayload, move pokedex.Move) *pokedex.StatusEffect {
	if payload.Meta == nil {
		return nil
	}
	status, ok := ailmentStatus(payload.Meta.Ailment.Name)
	if !ok {
		return nil
	}

	chance := float64(payload.Meta.AilmentChance) / 100
	if chance == 0 {
		if move.Category == pokedex.CategoryStatus {
			chance = 1.0
		} else {
			chance = c.defaultStatusChance
		}
	}
	return &pokedex.StatusEffect{Status: status, Chance: chance}
}

func ailmentStatus(name string) (pokedex.Status, bool) {
	switch name {
	case "burn":
		return pokedex.StatusBurn, true
	case "poison":
		return pokedex.StatusPoison, true
	case "paralysis":
		return pokedex.StatusParalysis, true
	case "sleep":
		return pokedex.StatusSleep, true
	case "freeze":
		return pokedex.StatusFreeze, true
	default:
		return pokedex.StatusNone, false
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pokedex.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("requesting %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

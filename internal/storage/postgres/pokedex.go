package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pokearena/internal/pokedex"
)

// PokedexRepository persists fetched pokémon descriptors as jsonb so the
// service survives restarts without refetching from the upstream. It
// implements pokedex.Store.
type PokedexRepository struct {
	db *pgxpool.Pool
}

// NewPokedexRepository creates a PokedexRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPokedexRepository(db *pgxpool.Pool) *PokedexRepository {
	return &PokedexRepository{db: db}
}

// Get retrieves a descriptor by normalized identifier: numeric identifiers
// look up by pokémon id, everything else by name.
//
// Postcondition: Returns the descriptor or pokedex.ErrNotFound.
func (r *PokedexRepository) Get(ctx context.Context, identifier string) (*pokedex.Pokemon, error) {
	var (
		raw []byte
		err error
	)
	if id, convErr := strconv.Atoi(identifier); convErr == nil {
		err = r.db.QueryRow(ctx,
			`SELECT data FROM pokedex_entries WHERE id = $1`, id,
		).Scan(&raw)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT data FROM pokedex_entries WHERE name = $1`, identifier,
		).Scan(&raw)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pokedex.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying pokedex entry %q: %w", identifier, err)
	}

	var p pokedex.Pokemon
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decoding pokedex entry %q: %w", identifier, err)
	}
	return &p, nil
}

// Put upserts a descriptor keyed by its pokémon id.
//
// Precondition: p must have a positive ID and a non-empty Name.
// Postcondition: A later Get for the id or name returns the stored descriptor.
func (r *PokedexRepository) Put(ctx context.Context, p *pokedex.Pokemon) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding pokedex entry %q: %w", p.Name, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO pokedex_entries (id, name, data, fetched_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, data = EXCLUDED.data, fetched_at = NOW()`,
		p.ID, p.Name, raw,
	)
	if err != nil {
		return fmt.Errorf("upserting pokedex entry %q: %w", p.Name, err)
	}
	return nil
}

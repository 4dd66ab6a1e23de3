package pokedex

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Fetcher retrieves a pokémon descriptor from the upstream data source.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) (*Pokemon, error)
}

// Store is an optional persistent cache under the in-memory one.
// Implementations return ErrNotFound for unknown identifiers.
type Store interface {
	Get(ctx context.Context, identifier string) (*Pokemon, error)
	Put(ctx context.Context, p *Pokemon) error
}

// NormalizeIdentifier canonicalizes a user-supplied pokémon identifier:
// trimmed, lowercased, spaces folded to dashes.
func NormalizeIdentifier(identifier string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(identifier)), " ", "-")
}

// Service resolves pokémon identifiers with a read-through cache. Each
// Service owns its cache; nothing is shared at package level, so two
// services never see each other's entries. Resolution order is memory,
// then the persistent store when configured, then the upstream fetcher.
type Service struct {
	fetcher Fetcher
	store   Store // nil when no persistent cache is configured
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string]*Pokemon
}

// NewService creates a Service over the given fetcher. store may be nil.
//
// Precondition: fetcher and logger must be non-nil.
func NewService(fetcher Fetcher, store Store, logger *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		cache:   make(map[string]*Pokemon),
	}
}

// Get returns the descriptor for the pokémon named by identifier (name or
// numeric id, case-insensitive).
//
// Postcondition: returns ErrNotFound when no pokémon matches; a successful
// result is cached under the requested identifier, the canonical name, and
// the numeric id.
func (s *Service) Get(ctx context.Context, identifier string) (*Pokemon, error) {
	key := NormalizeIdentifier(identifier)

	s.mu.RLock()
	p, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	if s.store != nil {
		p, err := s.store.Get(ctx, key)
		switch {
		case err == nil:
			s.remember(key, p)
			return p, nil
		case !errors.Is(err, ErrNotFound):
			s.logger.Warn("pokedex store lookup failed",
				zap.String("identifier", key),
				zap.Error(err),
			)
		}
	}

	p, err := s.fetcher.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	s.remember(key, p)

	if s.store != nil {
		if err := s.store.Put(ctx, p); err != nil {
			s.logger.Warn("pokedex store write failed",
				zap.String("name", p.Name),
				zap.Error(err),
			)
		}
	}
	return p, nil
}

func (s *Service) remember(key string, p *Pokemon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = p
	s.cache[strconv.Itoa(p.ID)] = p
	s.cache[NormalizeIdentifier(p.Name)] = p
}

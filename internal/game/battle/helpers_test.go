package battle

import "pokearena/internal/pokedex"

// stubSource returns scripted values, then falls back to the defaults.
// It lets tests pin individual draws without seeding a real generator.
type stubSource struct {
	ints       []int
	floats     []float64
	defaultInt int
	defaultF   float64
}

func (s *stubSource) Intn(n int) int {
	if len(s.ints) > 0 {
		v := s.ints[0]
		s.ints = s.ints[1:]
		return v
	}
	return s.defaultInt
}

func (s *stubSource) Float64() float64 {
	if len(s.floats) > 0 {
		v := s.floats[0]
		s.floats = s.floats[1:]
		return v
	}
	return s.defaultF
}

// maxRollSource always returns the top of each range: accuracy rolls of 100
// would miss, so tests using it pin accuracy separately; its Float64 of 1.0
// drives the damage factor to exactly 1.0.
type maxRollSource struct{}

func (maxRollSource) Intn(n int) int   { return n - 1 }
func (maxRollSource) Float64() float64 { return 1.0 }

func testPokemon(name string, types []string, stats pokedex.Stats, moves ...pokedex.Move) *pokedex.Pokemon {
	return &pokedex.Pokemon{
		Name:  name,
		Types: types,
		Stats: stats,
		Moves: moves,
	}
}

func physicalMove(name, typ string, power int) pokedex.Move {
	return pokedex.Move{
		Name:     name,
		Type:     typ,
		Category: pokedex.CategoryPhysical,
		Power:    power,
		Accuracy: 100,
		PP:       20,
	}
}

func statusMove(name, typ string, effect *pokedex.StatusEffect) pokedex.Move {
	return pokedex.Move{
		Name:     name,
		Type:     typ,
		Category: pokedex.CategoryStatus,
		Accuracy: 100,
		PP:       20,
		Effect:   effect,
	}
}

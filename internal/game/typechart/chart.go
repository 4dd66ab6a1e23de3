// Package typechart implements the elemental type-effectiveness table used
// by the damage formula and the move-selection policy. The canonical chart
// covers the eighteen standard types; custom charts can be loaded from YAML.
package typechart

import "sort"

// Multiplier values a chart entry may hold. Anything a chart does not list
// is implicitly Neutral.
const (
	Immune         = 0.0
	NotEffective   = 0.5
	Neutral        = 1.0
	SuperEffective = 2.0
)

// Chart is an immutable type-effectiveness table. Entries record only the
// deviations from neutral; lookups for unlisted pairs return Neutral.
//
// Invariant: a Chart is never mutated after construction and is safe for
// concurrent readers.
type Chart struct {
	multipliers map[string]map[string]float64
}

// New returns the canonical chart for the eighteen standard types.
func New() *Chart {
	return &Chart{multipliers: canonical()}
}

// FromDeviations builds a Chart from an explicit deviation table. The input
// is copied, so the caller may keep mutating its map.
func FromDeviations(deviations map[string]map[string]float64) *Chart {
	m := make(map[string]map[string]float64, len(deviations))
	for atk, row := range deviations {
		cp := make(map[string]float64, len(row))
		for def, mult := range row {
			cp[def] = mult
		}
		m[atk] = cp
	}
	return &Chart{multipliers: m}
}

// Effectiveness returns the combined multiplier for a move of the attacking
// type against a defender with the given type list. Multipliers for each
// defending type are multiplied together; pairs the chart does not list
// contribute Neutral, so unknown types never distort the result.
//
// Postcondition: returns 1.0 when defendingTypes is empty.
func (c *Chart) Effectiveness(attackingType string, defendingTypes []string) float64 {
	multiplier := Neutral
	row, ok := c.multipliers[attackingType]
	if !ok {
		return multiplier
	}
	for _, defending := range defendingTypes {
		if m, ok := row[defending]; ok {
			multiplier *= m
		}
	}
	return multiplier
}

// Types returns the attacking types the chart has deviation rows for,
// sorted alphabetically.
func (c *Chart) Types() []string {
	types := make([]string, 0, len(c.multipliers))
	for t := range c.multipliers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Deviations returns a copy of the deviation table, keyed by attacking type
// then defending type.
func (c *Chart) Deviations() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(c.multipliers))
	for atk, row := range c.multipliers {
		cp := make(map[string]float64, len(row))
		for def, mult := range row {
			cp[def] = mult
		}
		out[atk] = cp
	}
	return out
}

// canonical returns the deviation table for the standard eighteen types.
// Pairs not listed here resolve to Neutral.
func canonical() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"normal":   {"rock": 0.5, "ghost": 0.0, "steel": 0.5},
		"fire":     {"fire": 0.5, "water": 0.5, "grass": 2.0, "ice": 2.0, "bug": 2.0, "rock": 0.5, "dragon": 0.5, "steel": 2.0},
		"water":    {"fire": 2.0, "water": 0.5, "grass": 0.5, "ground": 2.0, "rock": 2.0, "dragon": 0.5},
		"grass":    {"fire": 0.5, "water": 2.0, "grass": 0.5, "poison": 0.5, "ground": 2.0, "flying": 0.5, "bug": 0.5, "rock": 2.0, "dragon": 0.5, "steel": 0.5},
		"electric": {"water": 2.0, "grass": 0.5, "ground": 0.0, "flying": 2.0, "dragon": 0.5, "electric": 0.5},
		"ice":      {"fire": 0.5, "water": 0.5, "grass": 2.0, "ice": 0.5, "ground": 2.0, "flying": 2.0, "dragon": 2.0, "steel": 0.5},
		"fighting": {"normal": 2.0, "ice": 2.0, "poison": 0.5, "flying": 0.5, "psychic": 0.5, "bug": 0.5, "rock": 2.0, "ghost": 0.0, "dark": 2.0, "steel": 2.0, "fairy": 0.5},
		"poison":   {"grass": 2.0, "poison": 0.5, "ground": 0.5, "rock": 0.5, "ghost": 0.5, "steel": 0.0, "fairy": 2.0},
		"ground":   {"fire": 2.0, "electric": 2.0, "grass": 0.5, "poison": 2.0, "flying": 0.0, "bug": 0.5, "rock": 2.0, "steel": 2.0},
		"flying":   {"electric": 0.5, "grass": 2.0, "ice": 0.5, "fighting": 2.0, "bug": 2.0, "rock": 0.5, "steel": 0.5},
		"psychic":  {"fighting": 2.0, "poison": 2.0, "psychic": 0.5, "dark": 0.0, "steel": 0.5},
		"bug":      {"fire": 0.5, "grass": 2.0, "fighting": 0.5, "poison": 0.5, "flying": 0.5, "psychic": 2.0, "ghost": 0.5, "dark": 2.0, "steel": 0.5, "fairy": 0.5},
		"rock":     {"fire": 2.0, "ice": 2.0, "fighting": 0.5, "ground": 0.5, "flying": 2.0, "bug": 2.0, "steel": 0.5},
		"ghost":    {"normal": 0.0, "psychic": 2.0, "ghost": 2.0, "dark": 0.5},
		"dragon":   {"dragon": 2.0, "steel": 0.5, "fairy": 0.0},
		"dark":     {"fighting": 0.5, "psychic": 2.0, "ghost": 2.0, "dark": 0.5, "fairy": 0.5},
		"steel":    {"fire": 0.5, "water": 0.5, "electric": 0.5, "ice": 2.0, "rock": 2.0, "steel": 0.5, "fairy": 2.0},
		"fairy":    {"fire": 0.5, "fighting": 2.0, "poison": 0.5, "dragon": 2.0, "dark": 2.0, "steel": 0.5},
	}
}

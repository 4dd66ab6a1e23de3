// Package pokedex defines the combatant data model and the caching service
// that resolves pokémon identifiers against PokeAPI.
package pokedex

import "errors"

// ErrNotFound is returned when no pokémon matches the requested identifier.
var ErrNotFound = errors.New("pokedex: pokemon not found")

// Status identifies a non-volatile status condition.
type Status string

const (
	StatusNone      Status = ""
	StatusBurn      Status = "burn"
	StatusPoison    Status = "poison"
	StatusParalysis Status = "paralysis"
	StatusSleep     Status = "sleep"
	StatusFreeze    Status = "freeze"
)

// MoveCategory classifies which stat pair a move damages with.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// Stats holds the six base stats of a pokémon.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Total returns the base stat total.
func (s Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// StatusEffect is the status condition a move may inflict on its target,
// with the probability of it taking hold on a successful use.
//
// Invariant: 0.0 <= Chance <= 1.0.
type StatusEffect struct {
	Status Status  `json:"status"`
	Chance float64 `json:"chance"`
}

// Move describes a single learnable move. Power is zero for moves that deal
// no direct damage; the battle engine treats such moves as status moves
// regardless of Category.
type Move struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Category MoveCategory  `json:"category"`
	Power    int           `json:"power,omitempty"`
	Accuracy int           `json:"accuracy"`
	PP       int           `json:"pp"`
	Priority int           `json:"priority"`
	Effect   *StatusEffect `json:"effect,omitempty"`
}

// HasPower reports whether the move deals direct damage.
func (m Move) HasPower() bool {
	return m.Power > 0
}

// IsPhysical reports whether the move damages with Attack vs Defense.
// Everything that has power and is not physical uses the special pair.
func (m Move) IsPhysical() bool {
	return m.Category == CategoryPhysical
}

// Pokemon is an immutable species descriptor as fetched from PokeAPI.
// Battle-time state (current HP, status) lives in the battle package.
type Pokemon struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Types     []string `json:"types"`
	Stats     Stats    `json:"stats"`
	Abilities []string `json:"abilities"`
	Moves     []Move   `json:"moves"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	SpriteURL string   `json:"sprite_url,omitempty"`
}

// HasType reports whether the pokémon has the given type. Used for the
// same-type attack bonus.
func (p *Pokemon) HasType(t string) bool {
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}

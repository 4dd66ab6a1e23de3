// Package battle implements the turn-based combat engine: the damage
// formula, the status-effect state machine, the move-selection policy, and
// the turn orchestrator that drives a full battle to an outcome.
package battle

import "pokearena/internal/pokedex"

// Level is the fixed level both combatants battle at.
const Level = 50

// SideState is the mutable per-combatant battle state. It references the
// immutable species descriptor and tracks what changes during a battle.
type SideState struct {
	Pokemon *pokedex.Pokemon
	// CurrentHP is clamped to [0, Pokemon.Stats.HP].
	CurrentHP int
	// Status is the active non-volatile condition, StatusNone when healthy.
	Status pokedex.Status
	// StatusTurns counts end-of-turn ticks spent asleep.
	StatusTurns int
}

// NewSideState returns battle state for p at full HP with no status.
//
// Precondition: p must be non-nil with Stats.HP > 0.
func NewSideState(p *pokedex.Pokemon) *SideState {
	return &SideState{
		Pokemon:   p,
		CurrentHP: p.Stats.HP,
	}
}

// Fainted reports whether the combatant is out of the battle.
func (s *SideState) Fainted() bool {
	return s.CurrentHP <= 0
}

// TakeDamage reduces current HP by amount, clamping at zero.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP >= 0.
func (s *SideState) TakeDamage(amount int) {
	s.CurrentHP -= amount
	if s.CurrentHP < 0 {
		s.CurrentHP = 0
	}
}

// EffectiveSpeed returns the speed stat used for turn ordering. Paralysis
// quarters speed (integer division).
func (s *SideState) EffectiveSpeed() int {
	speed := s.Pokemon.Stats.Speed
	if s.Status == pokedex.StatusParalysis {
		speed /= 4
	}
	return speed
}

package battle

import (
	"pokearena/internal/game/rng"
	"pokearena/internal/pokedex"
)

const (
	// paralysisBlockChance is the per-action chance a paralyzed combatant
	// cannot move.
	paralysisBlockChance = 0.25
	// thawChance is the per-tick chance a frozen combatant thaws.
	thawChance = 0.2
	// maxSleepTurns bounds the fresh wake threshold drawn each tick.
	maxSleepTurns = 3
)

// ApplyStatus puts the combatant under status. A combatant already under
// any status is unaffected: statuses never overwrite one another.
//
// Postcondition: returns true iff the status took hold.
func (s *SideState) ApplyStatus(status pokedex.Status) bool {
	if status == pokedex.StatusNone || s.Status != pokedex.StatusNone {
		return false
	}
	s.Status = status
	s.StatusTurns = 0
	return true
}

// BlocksAction reports whether the combatant's status prevents it from
// acting this sub-turn. Sleep and freeze always block; paralysis blocks
// with probability 0.25 (one draw from src); other statuses never block.
func (s *SideState) BlocksAction(src rng.Source) bool {
	switch s.Status {
	case pokedex.StatusParalysis:
		return src.Float64() < paralysisBlockChance
	case pokedex.StatusSleep, pokedex.StatusFreeze:
		return true
	default:
		return false
	}
}

// TickResult describes what a single end-of-turn status tick did.
type TickResult struct {
	// Damage is the chip damage dealt by burn or poison, zero otherwise.
	Damage int
	// Recovered is true when sleep or freeze ended this tick.
	Recovered bool
}

// TickStatus applies the end-of-turn effect of the active status:
// burn deals max(1, maxHP/16), poison deals max(1, maxHP/8), sleep wakes
// once the turns slept reach a fresh uniform draw from {1, 2, 3}, freeze
// thaws with probability 0.2. Healthy and paralyzed combatants tick to
// no effect.
//
// Precondition: the caller only ticks combatants with CurrentHP > 0.
func (s *SideState) TickStatus(src rng.Source) TickResult {
	switch s.Status {
	case pokedex.StatusBurn:
		damage := s.Pokemon.Stats.HP / 16
		if damage < 1 {
			damage = 1
		}
		s.TakeDamage(damage)
		return TickResult{Damage: damage}

	case pokedex.StatusPoison:
		damage := s.Pokemon.Stats.HP / 8
		if damage < 1 {
			damage = 1
		}
		s.TakeDamage(damage)
		return TickResult{Damage: damage}

	case pokedex.StatusSleep:
		s.StatusTurns++
		if s.StatusTurns >= src.Intn(maxSleepTurns)+1 {
			s.Status = pokedex.StatusNone
			s.StatusTurns = 0
			return TickResult{Recovered: true}
		}
		return TickResult{}

	case pokedex.StatusFreeze:
		if src.Float64() < thawChance {
			s.Status = pokedex.StatusNone
			s.StatusTurns = 0
			return TickResult{Recovered: true}
		}
		return TickResult{}

	default:
		return TickResult{}
	}
}

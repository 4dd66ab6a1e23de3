package battle

import (
	"pokearena/internal/game/rng"
	"pokearena/internal/game/typechart"
	"pokearena/internal/pokedex"
)

// stab is the same-type attack bonus applied when the attacker shares the
// move's type.
const stab = 1.5

// DamageBreakdown records every input to a single damage computation so
// callers can render or audit the result.
type DamageBreakdown struct {
	MoveName       string  `json:"move"`
	MovePower      int     `json:"power"`
	AttackStat     int     `json:"attack_stat"`
	DefenseStat    int     `json:"defense_stat"`
	TypeMultiplier float64 `json:"type_multiplier"`
	STAB           bool    `json:"stab"`
	RandomFactor   float64 `json:"random_factor"`
	Amount         int     `json:"amount"`
}

// ComputeDamage evaluates the level-50 damage formula for attacker using
// move against defender. Moves without power, and moves that are neither
// physical nor special, deal no damage. A burned attacker's physical
// attack stat is halved (integer division) before the formula runs.
//
// Postcondition: Amount >= 1 for any damaging move (the minimum applies
// even under type immunity); Amount == 0 only for non-damaging moves.
func ComputeDamage(attacker, defender *SideState, move pokedex.Move, chart *typechart.Chart, src rng.Source) DamageBreakdown {
	breakdown := DamageBreakdown{
		MoveName:  move.Name,
		MovePower: move.Power,
	}
	if !move.HasPower() {
		return breakdown
	}

	switch move.Category {
	case pokedex.CategoryPhysical:
		breakdown.AttackStat = attacker.Pokemon.Stats.Attack
		breakdown.DefenseStat = defender.Pokemon.Stats.Defense
	case pokedex.CategorySpecial:
		breakdown.AttackStat = attacker.Pokemon.Stats.SpecialAttack
		breakdown.DefenseStat = defender.Pokemon.Stats.SpecialDefense
	default:
		return breakdown
	}

	if attacker.Status == pokedex.StatusBurn && move.IsPhysical() {
		breakdown.AttackStat /= 2
	}

	base := ((2*Level+10)/250.0)*(float64(breakdown.AttackStat)/float64(breakdown.DefenseStat))*float64(move.Power) + 2

	breakdown.TypeMultiplier = chart.Effectiveness(move.Type, defender.Pokemon.Types)
	base *= breakdown.TypeMultiplier

	if attacker.Pokemon.HasType(move.Type) {
		breakdown.STAB = true
		base *= stab
	}

	// Uniform in [0.85, 1.0).
	breakdown.RandomFactor = 0.85 + src.Float64()*0.15
	base *= breakdown.RandomFactor

	breakdown.Amount = int(base)
	if breakdown.Amount < 1 {
		breakdown.Amount = 1
	}
	return breakdown
}

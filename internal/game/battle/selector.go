package battle

import (
	"pokearena/internal/game/typechart"
	"pokearena/internal/pokedex"
)

// SelectMove picks the move the actor will use against the opponent.
// Candidates are the actor's moves with power > 0; among them the policy
// keeps the moves with the highest type effectiveness against the
// opponent, then the highest power, then the one earliest in the actor's
// move list. The policy draws no randomness, so a battle's RNG trace is
// independent of how equally-good moves are ordered.
//
// Postcondition: returns false iff the actor has no damaging moves.
func SelectMove(actor, opponent *SideState, chart *typechart.Chart) (pokedex.Move, bool) {
	var (
		best              pokedex.Move
		found             bool
		bestEffectiveness float64
	)

	for _, move := range actor.Pokemon.Moves {
		if !move.HasPower() {
			continue
		}
		effectiveness := chart.Effectiveness(move.Type, opponent.Pokemon.Types)
		switch {
		case !found,
			effectiveness > bestEffectiveness,
			effectiveness == bestEffectiveness && move.Power > best.Power:
			best = move
			found = true
			bestEffectiveness = effectiveness
		}
	}

	return best, found
}

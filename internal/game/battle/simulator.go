package battle

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pokearena/internal/game/rng"
	"pokearena/internal/game/typechart"
	"pokearena/internal/pokedex"
)

// DefaultMaxTurns is the turn cap after which a battle is declared a draw.
const DefaultMaxTurns = 50

// Snapshot is a side's final state in an Outcome.
type Snapshot struct {
	Name      string         `json:"name"`
	Types     []string       `json:"types"`
	FinalHP   int            `json:"final_hp"`
	MaxHP     int            `json:"max_hp"`
	Status    pokedex.Status `json:"status"`
	Stats     pokedex.Stats  `json:"stats"`
	Abilities []string       `json:"abilities"`
}

// Outcome is the result of a completed battle.
type Outcome struct {
	ID uuid.UUID `json:"id"`
	// Winner is the winning pokémon's name, empty when Draw is true.
	Winner string `json:"winner,omitempty"`
	// Draw is true when the turn cap elapsed with both sides standing, or
	// both sides reached zero HP at the same resolution point.
	Draw   bool        `json:"draw"`
	Turns  int         `json:"turns"`
	Sides  [2]Snapshot `json:"sides"`
	Events []Event     `json:"events"`
}

// Simulator runs complete battles. It performs no I/O: combatant
// descriptors are resolved by the caller, and every random draw goes
// through the injected Source, so a seeded source replays a battle
// exactly.
//
// A Simulator is not safe for concurrent use of a single Source that is
// itself stateful; create one per battle or share only concurrent-safe
// sources.
type Simulator struct {
	chart    *typechart.Chart
	src      rng.Source
	logger   *zap.Logger
	maxTurns int
}

// NewSimulator creates a Simulator with the default 50-turn cap.
//
// Precondition: chart, src, and logger must be non-nil.
func NewSimulator(chart *typechart.Chart, src rng.Source, logger *zap.Logger) *Simulator {
	return &Simulator{
		chart:    chart,
		src:      src,
		logger:   logger,
		maxTurns: DefaultMaxTurns,
	}
}

// SetMaxTurns overrides the turn cap.
//
// Precondition: maxTurns > 0.
func (s *Simulator) SetMaxTurns(maxTurns int) {
	if maxTurns <= 0 {
		panic("battle: SetMaxTurns called with maxTurns <= 0")
	}
	s.maxTurns = maxTurns
}

// Run simulates a full battle between p1 (side 1) and p2 (side 2) and
// returns the outcome. Each turn: order the sides by effective speed
// (ties favor side 1), let each surviving side act, then tick end-of-turn
// status effects in side order. The battle ends when a side faints or the
// turn cap elapses.
//
// Postcondition: Outcome.Turns <= the configured cap; Outcome.Events is in
// chronological order.
func (s *Simulator) Run(p1, p2 *pokedex.Pokemon) *Outcome {
	sides := [2]*SideState{NewSideState(p1), NewSideState(p2)}

	s.logger.Info("battle starting",
		zap.String("pokemon1", p1.Name),
		zap.String("pokemon2", p2.Name),
		zap.Int("max_turns", s.maxTurns),
	)

	var events []Event
	turn := 0

	for !sides[0].Fainted() && !sides[1].Fainted() && turn < s.maxTurns {
		turn++

		first, second := 0, 1
		if sides[1].EffectiveSpeed() > sides[0].EffectiveSpeed() {
			first, second = 1, 0
		}

		s.logger.Debug("turn starting",
			zap.Int("turn", turn),
			zap.Int("first_side", first+1),
			zap.Int("hp_side1", sides[0].CurrentHP),
			zap.Int("hp_side2", sides[1].CurrentHP),
		)

		if !sides[first].Fainted() {
			events = append(events, s.act(turn, first, sides[first], sides[second])...)
			if sides[second].Fainted() {
				events = append(events, faintEvent(turn, second, sides[second]))
				break
			}
		}

		if !sides[second].Fainted() {
			events = append(events, s.act(turn, second, sides[second], sides[first])...)
			if sides[first].Fainted() {
				events = append(events, faintEvent(turn, first, sides[first]))
				break
			}
		}

		// End-of-turn status effects run in side order, not action order. A
		// faint from chip damage ends the turn before the other side ticks.
		fainted := false
		for i, side := range sides {
			if side.Fainted() {
				continue
			}
			events = append(events, s.tick(turn, i, side)...)
			if side.Fainted() {
				events = append(events, faintEvent(turn, i, side))
				fainted = true
				break
			}
		}
		if fainted {
			break
		}
	}

	outcome := &Outcome{
		ID:     uuid.New(),
		Turns:  turn,
		Sides:  [2]Snapshot{snapshot(sides[0]), snapshot(sides[1])},
		Events: events,
	}

	switch {
	case !sides[0].Fainted() && sides[1].Fainted():
		outcome.Winner = p1.Name
	case !sides[1].Fainted() && sides[0].Fainted():
		outcome.Winner = p2.Name
	default:
		outcome.Draw = true
	}

	s.logger.Info("battle finished",
		zap.String("battle_id", outcome.ID.String()),
		zap.String("winner", outcome.Winner),
		zap.Bool("draw", outcome.Draw),
		zap.Int("turns", outcome.Turns),
	)
	return outcome
}

// act resolves one side's sub-turn: block check, move selection, accuracy
// roll, damage, then status infliction if the defender survived unaffected.
func (s *Simulator) act(turn, side int, actor, defender *SideState) []Event {
	if actor.BlocksAction(s.src) {
		return []Event{{
			Turn:   turn,
			Side:   side + 1,
			Kind:   EventBlocked,
			Actor:  actor.Pokemon.Name,
			Status: actor.Status,
		}}
	}

	move, ok := SelectMove(actor, defender, s.chart)
	if !ok {
		return []Event{{
			Turn:  turn,
			Side:  side + 1,
			Kind:  EventNoUsableMoves,
			Actor: actor.Pokemon.Name,
		}}
	}

	roll := s.src.Intn(100) + 1
	if roll > move.Accuracy {
		return []Event{{
			Turn:         turn,
			Side:         side + 1,
			Kind:         EventMiss,
			Actor:        actor.Pokemon.Name,
			Target:       defender.Pokemon.Name,
			Move:         move.Name,
			AccuracyRoll: roll,
		}}
	}

	breakdown := ComputeDamage(actor, defender, move, s.chart, s.src)
	defender.TakeDamage(breakdown.Amount)

	events := []Event{{
		Turn:         turn,
		Side:         side + 1,
		Kind:         EventHit,
		Actor:        actor.Pokemon.Name,
		Target:       defender.Pokemon.Name,
		Move:         move.Name,
		AccuracyRoll: roll,
		Damage:       &breakdown,
		HPAfter:      defender.CurrentHP,
	}}

	if defender.Fainted() {
		return events
	}

	if move.Effect != nil && defender.Status == pokedex.StatusNone {
		if s.src.Float64() < move.Effect.Chance && defender.ApplyStatus(move.Effect.Status) {
			events = append(events, Event{
				Turn:   turn,
				Side:   otherSide(side) + 1,
				Kind:   EventStatusInflicted,
				Actor:  defender.Pokemon.Name,
				Status: move.Effect.Status,
			})
		}
	}

	return events
}

// tick applies one side's end-of-turn status effect and converts the
// result into events.
func (s *Simulator) tick(turn, side int, state *SideState) []Event {
	status := state.Status
	result := state.TickStatus(s.src)

	switch {
	case result.Damage > 0:
		return []Event{{
			Turn:         turn,
			Side:         side + 1,
			Kind:         EventStatusDamage,
			Actor:        state.Pokemon.Name,
			Status:       status,
			StatusDamage: result.Damage,
			HPAfter:      state.CurrentHP,
		}}
	case result.Recovered:
		return []Event{{
			Turn:   turn,
			Side:   side + 1,
			Kind:   EventRecovered,
			Actor:  state.Pokemon.Name,
			Status: status,
		}}
	default:
		return nil
	}
}

func faintEvent(turn, side int, state *SideState) Event {
	return Event{
		Turn:    turn,
		Side:    side + 1,
		Kind:    EventFainted,
		Actor:   state.Pokemon.Name,
		HPAfter: state.CurrentHP,
	}
}

func snapshot(s *SideState) Snapshot {
	return Snapshot{
		Name:      s.Pokemon.Name,
		Types:     s.Pokemon.Types,
		FinalHP:   s.CurrentHP,
		MaxHP:     s.Pokemon.Stats.HP,
		Status:    s.Status,
		Stats:     s.Pokemon.Stats,
		Abilities: s.Pokemon.Abilities,
	}
}

func otherSide(side int) int {
	return 1 - side
}

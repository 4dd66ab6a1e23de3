package battle

import "pokearena/internal/pokedex"

// EventKind classifies a single battle event.
type EventKind string

const (
	// EventBlocked records a combatant unable to act because of its status.
	EventBlocked EventKind = "blocked"
	// EventNoUsableMoves records a combatant with no damaging moves; it is
	// an ordinary event, not an error.
	EventNoUsableMoves EventKind = "no_usable_moves"
	// EventMiss records a failed accuracy roll.
	EventMiss EventKind = "miss"
	// EventHit records a landed damaging move.
	EventHit EventKind = "hit"
	// EventStatusInflicted records a status condition taking hold.
	EventStatusInflicted EventKind = "status_inflicted"
	// EventStatusDamage records end-of-turn burn or poison chip damage.
	EventStatusDamage EventKind = "status_damage"
	// EventRecovered records the end of sleep or freeze.
	EventRecovered EventKind = "recovered"
	// EventFainted records a combatant dropping to zero HP.
	EventFainted EventKind = "fainted"
)

// Event is one entry in a battle's ordered event sequence. The simulator
// emits structured events only; rendering them as text is the caller's
// concern.
type Event struct {
	// Turn is the 1-based turn the event occurred in.
	Turn int `json:"turn"`
	// Side is 1 or 2, identifying the combatant the event is about.
	Side int `json:"side"`
	Kind EventKind `json:"kind"`
	// Actor is the name of the combatant the event is about.
	Actor string `json:"actor"`
	// Target is the opposing combatant's name on miss and hit events.
	Target string `json:"target,omitempty"`
	// Move is set on miss and hit events.
	Move string `json:"move,omitempty"`
	// AccuracyRoll is the 1-100 roll for miss and hit events.
	AccuracyRoll int `json:"accuracy_roll,omitempty"`
	// Status is set on blocked, status_inflicted, status_damage, and
	// recovered events.
	Status pokedex.Status `json:"status,omitempty"`
	// Damage is the breakdown for hit events.
	Damage *DamageBreakdown `json:"damage,omitempty"`
	// StatusDamage is the chip damage for status_damage events.
	StatusDamage int `json:"status_damage,omitempty"`
	// HPAfter is the target's HP after hit events, and the actor's HP
	// after status_damage and fainted events.
	HPAfter int `json:"hp_after,omitempty"`
}

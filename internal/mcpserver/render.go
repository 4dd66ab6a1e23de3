package mcpserver

import (
	"fmt"
	"strings"

	"pokearena/internal/game/battle"
	"pokearena/internal/pokedex"
)

// maxListedMoves caps the moves shown per participant in the battle log.
const maxListedMoves = 6

// RenderPokemon formats a descriptor as markdown. The MCP tools and the
// battle CLI both print this form.
func RenderPokemon(p *pokedex.Pokemon) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s (#%03d)\n\n", displayName(p.Name), p.ID)
	fmt.Fprintf(&b, "**Type:** %s\n", displayTypes(p.Types))
	fmt.Fprintf(&b, "**Abilities:** %s\n\n", displayList(p.Abilities))

	b.WriteString("**Base Stats:**\n")
	fmt.Fprintf(&b, "- HP: %d\n", p.Stats.HP)
	fmt.Fprintf(&b, "- Attack: %d\n", p.Stats.Attack)
	fmt.Fprintf(&b, "- Defense: %d\n", p.Stats.Defense)
	fmt.Fprintf(&b, "- Sp. Attack: %d\n", p.Stats.SpecialAttack)
	fmt.Fprintf(&b, "- Sp. Defense: %d\n", p.Stats.SpecialDefense)
	fmt.Fprintf(&b, "- Speed: %d\n", p.Stats.Speed)
	fmt.Fprintf(&b, "- **Total: %d**\n\n", p.Stats.Total())

	if len(p.Moves) > 0 {
		b.WriteString("**Moves:**\n")
		for i, m := range p.Moves {
			if i == maxListedMoves {
				fmt.Fprintf(&b, "- ... and %d more\n", len(p.Moves)-maxListedMoves)
				break
			}
			b.WriteString("- " + describeMove(m) + "\n")
		}
	}
	return b.String()
}

// RenderBattle formats a completed battle as a markdown log. It reads only
// the outcome's event sequence and the participants' descriptors.
func RenderBattle(p1, p2 *pokedex.Pokemon, outcome *battle.Outcome) string {
	var b strings.Builder

	b.WriteString("# Pokemon Battle Arena\n\n")
	b.WriteString("## Participants\n\n")
	writeParticipant(&b, p1)
	writeParticipant(&b, p2)

	b.WriteString("## Battle Conditions\n\n")
	fmt.Fprintf(&b, "- Battle level: %d\n", battle.Level)
	fmt.Fprintf(&b, "- Battle id: %s\n\n", outcome.ID)

	b.WriteString("## Battle Log\n")
	currentTurn := 0
	for _, ev := range outcome.Events {
		if ev.Turn != currentTurn {
			currentTurn = ev.Turn
			fmt.Fprintf(&b, "\n### Turn %d\n", currentTurn)
		}
		b.WriteString("- " + eventLine(ev) + "\n")
	}

	b.WriteString("\n## Conclusion\n\n")
	if outcome.Draw {
		fmt.Fprintf(&b, "**Draw** after %d turns.\n", outcome.Turns)
	} else {
		winner := outcome.Sides[0]
		if outcome.Winner == outcome.Sides[1].Name {
			winner = outcome.Sides[1]
		}
		fmt.Fprintf(&b, "**Winner: %s** with %d/%d HP after %d turns.\n",
			displayName(winner.Name), winner.FinalHP, winner.MaxHP, outcome.Turns)
	}

	fmt.Fprintf(&b, "\nFinal state: %s %d/%d HP%s, %s %d/%d HP%s.\n",
		displayName(outcome.Sides[0].Name), outcome.Sides[0].FinalHP, outcome.Sides[0].MaxHP,
		statusSuffix(outcome.Sides[0].Status),
		displayName(outcome.Sides[1].Name), outcome.Sides[1].FinalHP, outcome.Sides[1].MaxHP,
		statusSuffix(outcome.Sides[1].Status),
	)
	return b.String()
}

func writeParticipant(b *strings.Builder, p *pokedex.Pokemon) {
	fmt.Fprintf(b, "### %s (#%03d)\n", displayName(p.Name), p.ID)
	fmt.Fprintf(b, "- Type: %s\n", displayTypes(p.Types))
	fmt.Fprintf(b, "- Stats: HP %d / Atk %d / Def %d / SpA %d / SpD %d / Spe %d (total %d)\n",
		p.Stats.HP, p.Stats.Attack, p.Stats.Defense,
		p.Stats.SpecialAttack, p.Stats.SpecialDefense, p.Stats.Speed, p.Stats.Total())
	fmt.Fprintf(b, "- Abilities: %s\n", displayList(p.Abilities))
	if len(p.Moves) > 0 {
		b.WriteString("- Moves:\n")
		for i, m := range p.Moves {
			if i == maxListedMoves {
				break
			}
			b.WriteString("  - " + describeMove(m) + "\n")
		}
	}
	b.WriteString("\n")
}

func eventLine(ev battle.Event) string {
	actor := displayName(ev.Actor)
	switch ev.Kind {
	case battle.EventBlocked:
		switch ev.Status {
		case pokedex.StatusParalysis:
			return actor + " is paralyzed and cannot move!"
		case pokedex.StatusSleep:
			return actor + " is fast asleep."
		case pokedex.StatusFreeze:
			return actor + " is frozen solid."
		default:
			return actor + " cannot move!"
		}
	case battle.EventNoUsableMoves:
		return actor + " has no usable moves!"
	case battle.EventMiss:
		return fmt.Sprintf("%s used %s, but it missed (roll %d).",
			actor, displayName(ev.Move), ev.AccuracyRoll)
	case battle.EventHit:
		line := fmt.Sprintf("%s used %s: %d damage to %s (%d HP left)",
			actor, displayName(ev.Move), ev.Damage.Amount, displayName(ev.Target), ev.HPAfter)
		if ev.Damage.TypeMultiplier > 1 {
			line += " - super effective!"
		} else if ev.Damage.TypeMultiplier < 1 {
			line += " - not very effective."
		}
		if ev.Damage.STAB {
			line += " (STAB)"
		}
		return line
	case battle.EventStatusInflicted:
		return fmt.Sprintf("%s %s", actor, statusInflictedText(ev.Status))
	case battle.EventStatusDamage:
		return fmt.Sprintf("%s is hurt by %s (-%d HP, %d left).",
			actor, statusNoun(ev.Status), ev.StatusDamage, ev.HPAfter)
	case battle.EventRecovered:
		if ev.Status == pokedex.StatusSleep {
			return actor + " woke up!"
		}
		return actor + " thawed out!"
	case battle.EventFainted:
		return "**" + actor + " fainted!**"
	default:
		return actor + ": " + string(ev.Kind)
	}
}

func statusInflictedText(status pokedex.Status) string {
	switch status {
	case pokedex.StatusBurn:
		return "was burned!"
	case pokedex.StatusPoison:
		return "was poisoned!"
	case pokedex.StatusParalysis:
		return "was paralyzed!"
	case pokedex.StatusSleep:
		return "fell asleep!"
	case pokedex.StatusFreeze:
		return "was frozen solid!"
	default:
		return "was affected!"
	}
}

func statusNoun(status pokedex.Status) string {
	if status == pokedex.StatusBurn {
		return "its burn"
	}
	return string(status)
}

func statusSuffix(status pokedex.Status) string {
	if status == pokedex.StatusNone {
		return ""
	}
	return " (" + string(status) + ")"
}

func describeMove(m pokedex.Move) string {
	desc := fmt.Sprintf("%s - %s", displayName(m.Name), displayName(m.Type))
	if m.HasPower() {
		desc += fmt.Sprintf(" (%d power)", m.Power)
	} else {
		desc += " (status)"
	}
	return desc
}

// displayName converts an API identifier like "vine-whip" to "Vine Whip".
func displayName(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func displayTypes(types []string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = displayName(t)
	}
	return strings.Join(parts, " / ")
}

func displayList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = displayName(item)
	}
	return strings.Join(parts, ", ")
}

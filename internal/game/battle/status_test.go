package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pokearena/internal/pokedex"
)

func TestApplyStatusRejectsOverwrite(t *testing.T) {
	state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 100}))

	require.True(t, state.ApplyStatus(pokedex.StatusBurn))
	assert.Equal(t, pokedex.StatusBurn, state.Status)

	assert.False(t, state.ApplyStatus(pokedex.StatusPoison))
	assert.Equal(t, pokedex.StatusBurn, state.Status)

	assert.False(t, state.ApplyStatus(pokedex.StatusNone))
}

func TestBlocksAction(t *testing.T) {
	state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 100}))

	assert.False(t, state.BlocksAction(&stubSource{}))

	state.Status = pokedex.StatusSleep
	assert.True(t, state.BlocksAction(&stubSource{defaultF: 0.99}))

	state.Status = pokedex.StatusFreeze
	assert.True(t, state.BlocksAction(&stubSource{defaultF: 0.99}))

	state.Status = pokedex.StatusBurn
	assert.False(t, state.BlocksAction(&stubSource{defaultF: 0.0}))
	state.Status = pokedex.StatusPoison
	assert.False(t, state.BlocksAction(&stubSource{defaultF: 0.0}))
}

func TestBlocksActionParalysisThreshold(t *testing.T) {
	state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 100}))
	state.Status = pokedex.StatusParalysis

	assert.True(t, state.BlocksAction(&stubSource{defaultF: 0.24}))
	assert.False(t, state.BlocksAction(&stubSource{defaultF: 0.25}))
}

func TestTickStatusBurnAndPoisonDamage(t *testing.T) {
	tests := []struct {
		name   string
		status pokedex.Status
		maxHP  int
		want   int
	}{
		{"burn is maxHP/16", pokedex.StatusBurn, 160, 10},
		{"poison is maxHP/8", pokedex.StatusPoison, 160, 20},
		{"burn floors at 1", pokedex.StatusBurn, 10, 1},
		{"poison floors at 1", pokedex.StatusPoison, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: tt.maxHP}))
			state.Status = tt.status

			result := state.TickStatus(&stubSource{})
			assert.Equal(t, tt.want, result.Damage)
			assert.Equal(t, tt.maxHP-tt.want, state.CurrentHP)
			// Burn and poison never clear on their own.
			assert.Equal(t, tt.status, state.Status)
		})
	}
}

func TestTickStatusDamageClampsAtZero(t *testing.T) {
	state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 160}))
	state.Status = pokedex.StatusPoison
	state.CurrentHP = 5

	result := state.TickStatus(&stubSource{})
	assert.Equal(t, 20, result.Damage)
	assert.Equal(t, 0, state.CurrentHP)
	assert.True(t, state.Fainted())
}

func TestTickStatusSleepWakes(t *testing.T) {
	state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 100}))
	state.Status = pokedex.StatusSleep

	// Threshold draw of 3 (Intn returns 2): stays asleep two ticks, wakes
	// on the third.
	src := &stubSource{defaultInt: 2}
	assert.False(t, state.TickStatus(src).Recovered)
	assert.False(t, state.TickStatus(src).Recovered)

	result := state.TickStatus(src)
	assert.True(t, result.Recovered)
	assert.Equal(t, pokedex.StatusNone, state.Status)
	assert.Equal(t, 0, state.StatusTurns)
}

func TestTickStatusSleepWakesWithinThreeTurns(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 100}))
		state.Status = pokedex.StatusSleep
		draw := rapid.IntRange(0, 2).Draw(t, "threshold")

		ticks := 0
		for state.Status == pokedex.StatusSleep {
			state.TickStatus(&stubSource{defaultInt: draw})
			ticks++
			require.LessOrEqual(t, ticks, 3)
		}
		assert.LessOrEqual(t, ticks, draw+1)
	})
}

func TestTickStatusFreezeThaw(t *testing.T) {
	state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 100}))
	state.Status = pokedex.StatusFreeze

	assert.False(t, state.TickStatus(&stubSource{defaultF: 0.2}).Recovered)
	assert.Equal(t, pokedex.StatusFreeze, state.Status)

	result := state.TickStatus(&stubSource{defaultF: 0.19})
	assert.True(t, result.Recovered)
	assert.Equal(t, pokedex.StatusNone, state.Status)
}

func TestTickStatusHealthyAndParalyzedNoOp(t *testing.T) {
	state := NewSideState(testPokemon("mon", []string{"normal"}, pokedex.Stats{HP: 100}))

	assert.Equal(t, TickResult{}, state.TickStatus(&stubSource{}))

	state.Status = pokedex.StatusParalysis
	assert.Equal(t, TickResult{}, state.TickStatus(&stubSource{}))
	assert.Equal(t, 100, state.CurrentHP)
	assert.Equal(t, pokedex.StatusParalysis, state.Status)
}

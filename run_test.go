package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyCraft can only afford Basic Synthesis, three times.
func tinyCraft(pruning string) Config {
	cfg := smallConfig(5, 30, pruning)
	cfg.MinProgress = 852
	return cfg
}

func TestRunCraftFeasible(t *testing.T) {
	out, err := runCraft(context.Background(), DefaultCatalog(), tinyCraft(PruneNone))
	require.NoError(t, err)

	r := out.Result
	assert.True(t, r.Feasible)
	assert.Equal(t, "Normal", r.Condition)
	assert.Equal(t, uint32(852), r.MinProgress)
	assert.Zero(t, r.MaxQuality)
	assert.Equal(t, 3, r.States)
	assert.Equal(t, 1, r.FrontierSize)
	assert.Equal(t, uint32(852), r.Progress)
	assert.Empty(t, r.Error)

	require.Len(t, r.Plan, 3)
	assert.Equal(t, StepDetail{Turn: 3, Action: "BasicSynthesis", Name: "Basic Synthesis", Progress: 284, CP: 5}, r.Plan[2])
	assert.Equal(t, 20, r.Plan[0].Durability)

	require.NotNil(t, out.Plan)
	assert.Equal(t, Frontier{pack(852, 0)}, out.Frontier)
	assert.Equal(t, 3, out.Stats.States)
}

func TestRunCraftInfeasible(t *testing.T) {
	// The opening heuristic insists on an opener, and 5 CP affords none.
	out, err := runCraft(context.Background(), DefaultCatalog(), tinyCraft(PruneHeuristic))
	require.ErrorIs(t, err, ErrInfeasible)

	assert.False(t, out.Result.Feasible)
	assert.Nil(t, out.Plan)
	assert.Empty(t, out.Result.Plan)
	assert.Empty(t, out.Frontier)
	assert.Contains(t, out.Result.Error, ErrInfeasible.Error())
}

func TestRunCraftRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Condition = "Stormy"
	_, err := runCraft(context.Background(), DefaultCatalog(), cfg)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInfeasible)
}

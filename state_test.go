package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refRules() Rules {
	return NewRules(DefaultCatalog(), DefaultMaxDurability)
}

// midCraft is a neutral mid-craft state: no combo pending, no effects.
func midCraft(cp, dur int) State {
	return State{CP: cp, Durability: dur, LastAction: ActionNone}
}

func withEffects(s State, kv map[Effect]int) State {
	for e, v := range kv {
		s.Effects[e] = int8(v)
	}
	return s
}

func TestNewState(t *testing.T) {
	s := NewState(661, 70, CondGood)
	assert.Equal(t, 661, s.CP)
	assert.Equal(t, 70, s.Durability)
	assert.Equal(t, CondGood, s.Condition)
	assert.Equal(t, ActionOpening, s.LastAction)
	assert.Equal(t, [effectCount]int8{}, s.Effects)
}

func TestDurabilityCost(t *testing.T) {
	r := refRules()
	plain := midCraft(500, 70)
	wasteNot := withEffects(plain, map[Effect]int{EffWasteNot: 2})

	tests := []struct {
		action Action
		plain  int
		halved int
	}{
		{ActionBasicSynthesis, 10, 5},
		{ActionGroundwork, 20, 10},
		{ActionPrudentSynthesis, 5, 3},
		{ActionObserve, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			assert.Equal(t, tt.plain, r.DurabilityCost(plain, tt.action))
			assert.Equal(t, tt.halved, r.DurabilityCost(wasteNot, tt.action))
		})
	}
}

func TestWasteNotStacksAndDecay(t *testing.T) {
	r := refRules()

	s := r.UseAction(midCraft(500, 70), ActionWasteNot)
	assert.Equal(t, int8(4), s.Effects[EffWasteNot])
	assert.Equal(t, 5, r.DurabilityCost(s, ActionBasicSynthesis))

	primed := midCraft(500, 70)
	primed.Condition = CondPrimed
	assert.Equal(t, int8(6), r.UseAction(primed, ActionWasteNot).Effects[EffWasteNot])
	assert.Equal(t, int8(10), r.UseAction(primed, ActionWasteNot2).Effects[EffWasteNot])

	for i := 0; i < 3; i++ {
		s = r.UseAction(s, ActionObserve)
		require.Greater(t, s.Effects[EffWasteNot], int8(0))
		assert.Equal(t, 5, r.DurabilityCost(s, ActionBasicSynthesis))
	}
	s = r.UseAction(s, ActionObserve)
	assert.Equal(t, int8(0), s.Effects[EffWasteNot])
	assert.Equal(t, 10, r.DurabilityCost(s, ActionBasicSynthesis))
}

func TestProgressPotency(t *testing.T) {
	r := refRules()
	base := midCraft(500, 70)
	malleable := base
	malleable.Condition = CondMalleable

	tests := []struct {
		name   string
		state  State
		action Action
		want   uint32
	}{
		{"plain", base, ActionBasicSynthesis, 284},
		{"muscle memory", withEffects(base, map[Effect]int{EffMuscleMemory: 1}), ActionBasicSynthesis, 568},
		{"veneration", withEffects(base, map[Effect]int{EffVeneration: 1}), ActionBasicSynthesis, 426},
		{"both buffs", withEffects(base, map[Effect]int{EffVeneration: 1, EffMuscleMemory: 1}), ActionGroundwork, 2132},
		{"malleable", malleable, ActionBasicSynthesis, 426},
		{"careful", base, ActionCarefulSynthesis, 426},
		{"no progress", base, ActionBasicTouch, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ProgressPotency(tt.state, tt.action))
		})
	}
}

func TestQualityPotency(t *testing.T) {
	r := refRules()
	base := midCraft(500, 70)
	cond := func(c Condition) State {
		s := base
		s.Condition = c
		return s
	}

	tests := []struct {
		name   string
		state  State
		action Action
		want   uint32
	}{
		{"plain", base, ActionBasicTouch, 256},
		{"standard", base, ActionStandardTouch, 320},
		{"good", cond(CondGood), ActionBasicTouch, 384},
		{"excellent", cond(CondExcellent), ActionBasicTouch, 1024},
		{"poor", cond(CondPoor), ActionBasicTouch, 128},
		{"truncated", withEffects(base, map[Effect]int{EffInnerQuiet: 3}), ActionBasicTouch, 332},
		{"all buffs", withEffects(base, map[Effect]int{EffInnerQuiet: 10, EffInnovation: 2, EffGreatStrides: 1}), ActionBasicTouch, 896},
		{"byregot", withEffects(base, map[Effect]int{EffInnerQuiet: 10, EffInnovation: 1}), ActionByregotsBlessing, 1920},
		{"no quality", base, ActionBasicSynthesis, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.QualityPotency(tt.state, tt.action))
		})
	}
}

func TestCanUseAction(t *testing.T) {
	r := refRules()
	base := midCraft(500, 70)
	good := base
	good.Condition = CondGood
	afterBasic := base
	afterBasic.LastAction = ActionBasicTouch

	tests := []struct {
		name   string
		state  State
		action Action
		want   bool
	}{
		{"affordable", base, ActionBasicTouch, true},
		{"too expensive", midCraft(17, 70), ActionBasicTouch, false},
		{"free at zero cp", midCraft(0, 70), ActionBasicSynthesis, true},
		{"broken", midCraft(500, 0), ActionBasicSynthesis, false},
		{"combo missing", base, ActionStandardTouch, false},
		{"combo met", afterBasic, ActionStandardTouch, true},
		{"opener mid craft", base, ActionMuscleMemory, false},
		{"opener first turn", NewState(500, 70, CondNormal), ActionMuscleMemory, true},
		{"precise normal", base, ActionPreciseTouch, false},
		{"precise good", good, ActionPreciseTouch, true},
		{"intensive good", good, ActionIntensiveSynthesis, true},
		{"prudent plain", base, ActionPrudentTouch, true},
		{"prudent waste not", withEffects(base, map[Effect]int{EffWasteNot: 1}), ActionPrudentSynthesis, false},
		{"groundwork short", midCraft(500, 15), ActionGroundwork, false},
		{"groundwork waste not", withEffects(midCraft(500, 15), map[Effect]int{EffWasteNot: 1}), ActionGroundwork, true},
		{"finesse low", withEffects(base, map[Effect]int{EffInnerQuiet: 9}), ActionTrainedFinesse, false},
		{"finesse full", withEffects(base, map[Effect]int{EffInnerQuiet: 10}), ActionTrainedFinesse, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.CanUseAction(tt.state, tt.action))
		})
	}
}

func TestUseActionInnerQuiet(t *testing.T) {
	r := refRules()
	base := midCraft(500, 70)

	assert.Equal(t, int8(1), r.UseAction(base, ActionBasicTouch).Effects[EffInnerQuiet])
	assert.Equal(t, int8(2), r.UseAction(base, ActionPreparatoryTouch).Effects[EffInnerQuiet])

	nine := withEffects(base, map[Effect]int{EffInnerQuiet: 9})
	assert.Equal(t, int8(10), r.UseAction(nine, ActionPreciseTouch).Effects[EffInnerQuiet])

	striding := withEffects(base, map[Effect]int{EffInnerQuiet: 8, EffGreatStrides: 2, EffInnovation: 3})
	after := r.UseAction(striding, ActionByregotsBlessing)
	assert.Equal(t, int8(0), after.Effects[EffInnerQuiet])
	assert.Equal(t, int8(0), after.Effects[EffGreatStrides])
	assert.Equal(t, int8(2), after.Effects[EffInnovation])

	// Progress actions leave InnerQuiet alone but consume Muscle Memory.
	mm := withEffects(base, map[Effect]int{EffInnerQuiet: 4, EffMuscleMemory: 3})
	after = r.UseAction(mm, ActionBasicSynthesis)
	assert.Equal(t, int8(4), after.Effects[EffInnerQuiet])
	assert.Equal(t, int8(0), after.Effects[EffMuscleMemory])
}

func TestUseActionDurability(t *testing.T) {
	r := refRules()

	manip := withEffects(midCraft(500, 40), map[Effect]int{EffManipulation: 2})
	after := r.UseAction(manip, ActionBasicSynthesis)
	assert.Equal(t, 35, after.Durability)
	assert.Equal(t, int8(1), after.Effects[EffManipulation])

	// Manipulation only restores from the turn after it is applied.
	after = r.UseAction(midCraft(500, 40), ActionManipulation)
	assert.Equal(t, 40, after.Durability)
	assert.Equal(t, int8(8), after.Effects[EffManipulation])
	assert.Equal(t, 404, after.CP)

	assert.Equal(t, 60, r.UseAction(midCraft(500, 30), ActionMasterMend).Durability)
	assert.Equal(t, 70, r.UseAction(midCraft(500, 60), ActionMasterMend).Durability)
	full := withEffects(midCraft(500, 68), map[Effect]int{EffManipulation: 1})
	assert.Equal(t, 70, r.UseAction(full, ActionObserve).Durability)
}

func TestUseActionTerminal(t *testing.T) {
	r := refRules()
	s := withEffects(midCraft(500, 10), map[Effect]int{EffInnerQuiet: 3, EffMuscleMemory: 3, EffManipulation: 2})

	after := r.UseAction(s, ActionBasicSynthesis)
	assert.Equal(t, 0, after.Durability)
	// No turn effects once the craft is over: no restore, MuscleMemory only decays.
	assert.Equal(t, int8(2), after.Effects[EffMuscleMemory])
	assert.Equal(t, int8(1), after.Effects[EffManipulation])
	assert.Equal(t, int8(3), after.Effects[EffInnerQuiet])

	// Durability never goes negative.
	assert.Equal(t, 0, r.UseAction(midCraft(500, 5), ActionBasicSynthesis).Durability)
}

func TestUseActionLastAction(t *testing.T) {
	r := refRules()
	s := midCraft(500, 70)

	s = r.UseAction(s, ActionBasicTouch)
	assert.Equal(t, ActionBasicTouch, s.LastAction)
	s = r.UseAction(s, ActionStandardTouch)
	assert.Equal(t, ActionStandardTouch, s.LastAction)
	s = r.UseAction(s, ActionObserve)
	assert.Equal(t, ActionObserve, s.LastAction)
	s = r.UseAction(s, ActionFocusedSynthesis)
	assert.Equal(t, ActionNone, s.LastAction)
}

func TestUseActionPrimedRefresh(t *testing.T) {
	r := refRules()
	s := midCraft(500, 70)
	s.Condition = CondPrimed

	assert.Equal(t, int8(6), r.UseAction(s, ActionInnovation).Effects[EffInnovation])
	assert.Equal(t, int8(5), r.UseAction(s, ActionGreatStrides).Effects[EffGreatStrides])
	assert.Equal(t, int8(10), r.UseAction(s, ActionManipulation).Effects[EffManipulation])
}

func TestUseActionDeterministic(t *testing.T) {
	r := refRules()
	a := withEffects(NewState(300, 50, CondGood), map[Effect]int{EffVeneration: 2})
	b := a

	for _, act := range []Action{ActionMuscleMemory, ActionInnovation, ActionPreciseTouch, ActionBasicTouch} {
		require.True(t, r.CanUseAction(a, act), act.String())
		a, b = r.UseAction(a, act), r.UseAction(b, act)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("%s: successors differ (-a +b):\n%s", act, diff)
		}
	}
}

package main

import (
	"fmt"
	"strings"
)

const maxInnerQuiet = 10

// State is one node of the search tree. It is a plain comparable value:
// two states are the same node exactly when all fields are equal, which is
// what the memo table keys on.
type State struct {
	CP         int
	Durability int
	Effects    [effectCount]int8
	Condition  Condition
	LastAction Action
}

// NewState returns the state a craft starts from.
func NewState(maxCP, maxDurability int, cond Condition) State {
	return State{
		CP:         maxCP,
		Durability: maxDurability,
		Condition:  cond,
		LastAction: ActionOpening,
	}
}

func (s State) effect(e Effect) int { return int(s.Effects[e]) }

func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cp=%d dur=%d cond=%s last=%s", s.CP, s.Durability, s.Condition, s.LastAction)
	for e := Effect(0); e < effectCount; e++ {
		if v := s.Effects[e]; v != 0 {
			fmt.Fprintf(&b, " %s=%d", e, v)
		}
	}
	return b.String()
}

// Rules binds the action catalog to the durability cap and implements the
// game rules over State: legality, transition and potency.
type Rules struct {
	cat           *Catalog
	maxDurability int
}

// NewRules returns the rule set for cat with the given durability cap.
func NewRules(cat *Catalog, maxDurability int) Rules {
	return Rules{cat: cat, maxDurability: maxDurability}
}

// DurabilityCost is the catalog cost, halved rounding up while Waste Not is
// active.
func (r Rules) DurabilityCost(s State, a Action) int {
	cost := r.cat.baseDurCost(a)
	if s.effect(EffWasteNot) != 0 {
		return (cost + 1) / 2
	}
	return cost
}

// CanUseAction reports whether a is legal at s under the hard game rules.
func (r Rules) CanUseAction(s State, a Action) bool {
	if s.CP < r.cat.cpCost(a) || s.Durability <= 0 {
		return false
	}
	if combo := r.cat.combo(a); combo != ActionNone && s.LastAction != combo {
		return false
	}
	switch a {
	case ActionPreciseTouch, ActionIntensiveSynthesis:
		return s.Condition == CondGood || s.Condition == CondExcellent
	case ActionPrudentTouch, ActionPrudentSynthesis:
		return s.effect(EffWasteNot) == 0
	case ActionGroundwork:
		return s.Durability >= r.DurabilityCost(s, a)
	case ActionTrainedFinesse:
		return s.effect(EffInnerQuiet) == maxInnerQuiet
	}
	return true
}

// ProgressPotency is the progress a yields at s.
//
// All multipliers are kept in halves so the result is an exact floor:
// condition ∈ {3, 2}/2, buffs (2 + 2·MuscleMemory + Veneration)/2.
func (r Rules) ProgressPotency(s State, a Action) uint32 {
	pim := r.cat.pim(a)
	if pim == 0 {
		return 0
	}
	cond := 2
	if s.Condition == CondMalleable {
		cond = 3
	}
	buff := 2
	if s.effect(EffMuscleMemory) > 0 {
		buff += 2
	}
	if s.effect(EffVeneration) > 0 {
		buff++
	}
	return uint32(cond * buff * pim / 4)
}

// QualityPotency is the quality a yields at s.
//
// Condition is in halves, buffs in tenths, and the action multiplier in
// hundredths of a scaled unit, giving a single exact division.
func (r Rules) QualityPotency(s State, a Action) uint32 {
	qim := r.cat.qim(a)
	if qim == 0 {
		return 0
	}
	cond := 2
	switch s.Condition {
	case CondGood:
		cond = 3
	case CondExcellent:
		cond = 8
	case CondPoor:
		cond = 1
	}
	iq := s.effect(EffInnerQuiet)
	buff := 10 + iq
	if s.effect(EffGreatStrides) != 0 {
		buff += 10
	}
	if s.effect(EffInnovation) != 0 {
		buff += 5
	}
	action := qim * 100
	if a == ActionByregotsBlessing {
		action += iq * 20 * BaseQualityMultiplier
	}
	return uint32(cond * buff * action / 2000)
}

// stacksFor is the counter each self-buff action sets.
func stacksFor(a Action) (Effect, int, bool) {
	switch a {
	case ActionWasteNot:
		return EffWasteNot, 4, true
	case ActionWasteNot2:
		return EffWasteNot, 8, true
	case ActionInnovation:
		return EffInnovation, 4, true
	case ActionVeneration:
		return EffVeneration, 4, true
	case ActionGreatStrides:
		return EffGreatStrides, 3, true
	case ActionMuscleMemory:
		return EffMuscleMemory, 5, true
	case ActionManipulation:
		return EffManipulation, 8, true
	}
	return 0, 0, false
}

// UseAction returns the successor of s after a. a must be legal at s.
// The steps run in a fixed order; later steps read what earlier ones wrote.
func (r Rules) UseAction(s State, a Action) State {
	next := s

	next.CP -= r.cat.cpCost(a)
	next.Durability = max(0, next.Durability-r.DurabilityCost(s, a))
	if isComboAction(a) {
		next.LastAction = a
	} else {
		next.LastAction = ActionNone
	}

	for e := Effect(0); e < effectCount; e++ {
		if e != EffInnerQuiet && next.Effects[e] > 0 {
			next.Effects[e]--
		}
	}

	if next.Durability == 0 {
		return next
	}

	if r.cat.pim(a) > 0 {
		next.Effects[EffMuscleMemory] = 0
	}
	if r.cat.qim(a) > 0 {
		iq := int(next.Effects[EffInnerQuiet]) + 1
		if a == ActionPreciseTouch || a == ActionPreparatoryTouch || a == ActionReflect {
			iq++
		}
		if a == ActionByregotsBlessing {
			iq = 0
		}
		next.Effects[EffInnerQuiet] = int8(min(maxInnerQuiet, iq))
		next.Effects[EffGreatStrides] = 0
	}

	if s.effect(EffManipulation) > 0 {
		next.Durability = min(r.maxDurability, next.Durability+5)
	}
	if a == ActionMasterMend {
		next.Durability = min(r.maxDurability, next.Durability+30)
	}

	if e, stacks, ok := stacksFor(a); ok {
		if s.Condition == CondPrimed {
			stacks += 2
		}
		next.Effects[e] = int8(stacks)
	}
	return next
}

package main

import "fmt"

// Pruner narrows the branching set beyond the hard rules. It only ever sees
// actions that already passed Rules.CanUseAction, and must be a pure
// function of the state.
type Pruner interface {
	Allow(s State, a Action) bool
}

const (
	PruneHeuristic = "heuristic"
	PruneNone      = "none"
)

func newPruner(name string, rules Rules) (Pruner, error) {
	switch name {
	case "", PruneHeuristic:
		return heuristicPruner{rules: rules}, nil
	case PruneNone:
		return permissivePruner{}, nil
	}
	return nil, fmt.Errorf("unknown pruning mode %q (want %q or %q)", name, PruneHeuristic, PruneNone)
}

// permissivePruner keeps every legal action, making the search complete.
type permissivePruner struct{}

func (permissivePruner) Allow(State, Action) bool { return true }

// heuristicPruner rejects actions that are dominated in practically every
// line of play. It gives up completeness for a much smaller tree.
type heuristicPruner struct {
	rules Rules
}

func (p heuristicPruner) Allow(s State, a Action) bool {
	cat := p.rules.cat
	pureProgress := cat.pim(a) != 0 && cat.qim(a) == 0
	pureQuality := cat.pim(a) == 0 && cat.qim(a) != 0

	// Observe and the opening turn each demand their own follow-ups.
	switch s.LastAction {
	case ActionObserve:
		if a != ActionFocusedSynthesis && a != ActionFocusedTouch {
			return false
		}
	case ActionOpening:
		if a != ActionMuscleMemory && a != ActionReflect {
			return false
		}
	}

	if s.effect(EffMuscleMemory) != 0 && pureQuality {
		return false
	}
	if s.effect(EffGreatStrides) != 0 && a != ActionByregotsBlessing {
		return false
	}
	if s.effect(EffInnerQuiet) != 0 && pureProgress {
		return false
	}

	switch a {
	case ActionGroundwork, ActionPreparatoryTouch:
		return s.effect(EffWasteNot) != 0
	case ActionManipulation:
		return s.effect(EffManipulation) == 0
	case ActionWasteNot, ActionWasteNot2:
		return s.effect(EffWasteNot) == 0
	case ActionByregotsBlessing:
		return s.effect(EffInnerQuiet) >= 6 &&
			(s.effect(EffInnovation) != 0 || s.effect(EffGreatStrides) != 0)
	case ActionGreatStrides:
		return s.effect(EffGreatStrides) == 0 &&
			s.effect(EffInnerQuiet) >= 6 &&
			s.effect(EffVeneration) <= 2
	case ActionVeneration:
		return s.effect(EffVeneration) <= 1 &&
			s.effect(EffInnerQuiet) == 0 &&
			s.effect(EffGreatStrides) == 0 &&
			s.effect(EffInnovation) <= 2
	case ActionInnovation:
		return s.effect(EffInnovation) <= 1 &&
			s.effect(EffMuscleMemory) == 0 &&
			s.effect(EffVeneration) <= 2
	case ActionMasterMend:
		return s.Durability+30 <= p.rules.maxDurability
	case ActionBasicTouch, ActionStandardTouch:
		return s.LastAction != ActionStandardTouch
	}
	return true
}

package main

import "strings"

type Action uint8

const (
	// ActionNone is the "no action" sentinel. It is also the neutral value
	// LastAction takes after any action that does not open a combo.
	ActionNone Action = iota
	// ActionOpening marks the first turn of a craft; only opener actions
	// list it as their combo predecessor.
	ActionOpening
	ActionBasicSynthesis
	ActionBasicTouch
	ActionMasterMend
	ActionObserve
	ActionWasteNot
	ActionVeneration
	ActionStandardTouch
	ActionGreatStrides
	ActionInnovation
	ActionWasteNot2
	ActionByregotsBlessing
	ActionPreciseTouch
	ActionMuscleMemory
	ActionCarefulSynthesis
	ActionManipulation
	ActionPrudentTouch
	ActionFocusedSynthesis
	ActionFocusedTouch
	ActionReflect
	ActionPreparatoryTouch
	ActionGroundwork
	ActionDelicateSynthesis
	ActionIntensiveSynthesis
	ActionAdvancedTouch
	ActionPrudentSynthesis
	ActionTrainedFinesse

	actionCount
)

// allActions is the branching order of the search. It doubles as the
// tie-break order for BestAction.
var allActions = [...]Action{
	ActionBasicSynthesis,
	ActionBasicTouch,
	ActionMasterMend,
	ActionObserve,
	ActionWasteNot,
	ActionVeneration,
	ActionStandardTouch,
	ActionGreatStrides,
	ActionInnovation,
	ActionWasteNot2,
	ActionByregotsBlessing,
	ActionPreciseTouch,
	ActionMuscleMemory,
	ActionCarefulSynthesis,
	ActionManipulation,
	ActionPrudentTouch,
	ActionFocusedSynthesis,
	ActionFocusedTouch,
	ActionReflect,
	ActionPreparatoryTouch,
	ActionGroundwork,
	ActionDelicateSynthesis,
	ActionIntensiveSynthesis,
	ActionAdvancedTouch,
	ActionPrudentSynthesis,
	ActionTrainedFinesse,
}

var actionIdents = [actionCount]string{
	"None",
	"Opening",
	"BasicSynthesis",
	"BasicTouch",
	"MasterMend",
	"Observe",
	"WasteNot",
	"Veneration",
	"StandardTouch",
	"GreatStrides",
	"Innovation",
	"WasteNot2",
	"ByregotsBlessing",
	"PreciseTouch",
	"MuscleMemory",
	"CarefulSynthesis",
	"Manipulation",
	"PrudentTouch",
	"FocusedSynthesis",
	"FocusedTouch",
	"Reflect",
	"PreparatoryTouch",
	"Groundwork",
	"DelicateSynthesis",
	"IntensiveSynthesis",
	"AdvancedTouch",
	"PrudentSynthesis",
	"TrainedFinesse",
}

func (a Action) String() string {
	if a < actionCount {
		return actionIdents[a]
	}
	return "Action(?)"
}

// isComboAction reports whether LastAction should remember a.
func isComboAction(a Action) bool {
	return a == ActionObserve || a == ActionBasicTouch || a == ActionStandardTouch
}

type Effect int

const (
	EffInnerQuiet Effect = iota
	EffWasteNot
	EffInnovation
	EffVeneration
	EffGreatStrides
	EffMuscleMemory
	EffManipulation

	effectCount
)

var effectNames = [effectCount]string{
	"InnerQuiet",
	"WasteNot",
	"Innovation",
	"Veneration",
	"GreatStrides",
	"MuscleMemory",
	"Manipulation",
}

func (e Effect) String() string {
	if e >= 0 && e < effectCount {
		return effectNames[e]
	}
	return "Effect(?)"
}

type Condition uint8

const (
	CondNormal Condition = iota
	CondGood
	CondExcellent
	CondPoor
	CondCentered
	CondSturdy
	CondMalleable
	CondPrimed

	conditionCount
)

var conditionNames = [conditionCount]string{
	"Normal",
	"Good",
	"Excellent",
	"Poor",
	"Centered",
	"Sturdy",
	"Malleable",
	"Primed",
}

func (c Condition) String() string {
	if c < conditionCount {
		return conditionNames[c]
	}
	return "Condition(?)"
}

// normalizeIdent folds display names ("Byregot's Blessing", "Waste Not II")
// and identifiers ("ByregotsBlessing") onto the same key.
func normalizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\'', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func parseAction(s string) (Action, bool) {
	key := normalizeIdent(s)
	switch key {
	case "null":
		return ActionNone, true
	case "wastenotii":
		return ActionWasteNot2, true
	case "mastersmend":
		return ActionMasterMend, true
	}
	for i, name := range actionIdents {
		if strings.ToLower(name) == key {
			return Action(i), true
		}
	}
	return ActionNone, false
}

func parseCondition(s string) (Condition, bool) {
	key := normalizeIdent(s)
	for i, name := range conditionNames {
		if strings.ToLower(name) == key {
			return Condition(i), true
		}
	}
	return CondNormal, false
}

package main

import "fmt"

// Fixed-point scales applied to catalog multipliers. A multiplier of 1.00
// becomes 237 progress or 256 quality, which keeps every potency a small
// integer and every packed frontier entry within 16 bits per half.
const (
	BaseProgressMultiplier = 237
	BaseQualityMultiplier  = 256
)

// CatalogEntry describes one action. ProgressPct and QualityPct are
// multipliers in hundredths (120 means 1.20).
type CatalogEntry struct {
	Name           string
	CPCost         int
	DurabilityCost int
	ProgressPct    int
	QualityPct     int
	Combo          Action // required predecessor, ActionNone if unrestricted
}

// Catalog is the static action table. It must not be modified after it has
// been handed to a Solver.
type Catalog struct {
	entries  [actionCount]CatalogEntry
	progress [actionCount]int // ProgressPct scaled by BaseProgressMultiplier
	quality  [actionCount]int // QualityPct scaled by BaseQualityMultiplier
}

// DefaultCatalog returns the reference action table.
func DefaultCatalog() *Catalog {
	c := &Catalog{}
	c.Set(ActionNone, CatalogEntry{Name: "Null"})
	c.Set(ActionOpening, CatalogEntry{Name: "None"})
	c.Set(ActionBasicSynthesis, CatalogEntry{"Basic Synthesis", 0, 10, 120, 0, ActionNone})
	c.Set(ActionBasicTouch, CatalogEntry{"Basic Touch", 18, 10, 0, 100, ActionNone})
	c.Set(ActionMasterMend, CatalogEntry{"Master's Mend", 88, 0, 0, 0, ActionNone})
	c.Set(ActionObserve, CatalogEntry{"Observe", 7, 0, 0, 0, ActionNone})
	c.Set(ActionWasteNot, CatalogEntry{"Waste Not", 56, 0, 0, 0, ActionNone})
	c.Set(ActionVeneration, CatalogEntry{"Veneration", 18, 0, 0, 0, ActionNone})
	c.Set(ActionStandardTouch, CatalogEntry{"Standard Touch", 18, 10, 0, 125, ActionBasicTouch})
	c.Set(ActionGreatStrides, CatalogEntry{"Great Strides", 32, 0, 0, 0, ActionNone})
	c.Set(ActionInnovation, CatalogEntry{"Innovation", 18, 0, 0, 0, ActionNone})
	c.Set(ActionWasteNot2, CatalogEntry{"Waste Not II", 98, 0, 0, 0, ActionNone})
	c.Set(ActionByregotsBlessing, CatalogEntry{"Byregot's Blessing", 24, 10, 0, 100, ActionNone})
	c.Set(ActionPreciseTouch, CatalogEntry{"Precise Touch", 18, 10, 0, 150, ActionNone})
	c.Set(ActionMuscleMemory, CatalogEntry{"Muscle Memory", 6, 10, 300, 0, ActionOpening})
	c.Set(ActionCarefulSynthesis, CatalogEntry{"Careful Synthesis", 7, 10, 180, 0, ActionNone})
	c.Set(ActionManipulation, CatalogEntry{"Manipulation", 96, 0, 0, 0, ActionNone})
	c.Set(ActionPrudentTouch, CatalogEntry{"Prudent Touch", 25, 5, 0, 100, ActionNone})
	c.Set(ActionFocusedSynthesis, CatalogEntry{"Focused Synthesis", 5, 10, 200, 0, ActionObserve})
	c.Set(ActionFocusedTouch, CatalogEntry{"Focused Touch", 18, 10, 0, 150, ActionObserve})
	c.Set(ActionReflect, CatalogEntry{"Reflect", 6, 10, 0, 100, ActionOpening})
	c.Set(ActionPreparatoryTouch, CatalogEntry{"Preparatory Touch", 40, 20, 0, 200, ActionNone})
	c.Set(ActionGroundwork, CatalogEntry{"Groundwork", 18, 20, 360, 0, ActionNone})
	c.Set(ActionDelicateSynthesis, CatalogEntry{"Delicate Synthesis", 32, 10, 100, 100, ActionNone})
	c.Set(ActionIntensiveSynthesis, CatalogEntry{"Intensive Synthesis", 6, 10, 400, 100, ActionNone})
	c.Set(ActionAdvancedTouch, CatalogEntry{"Advanced Touch", 18, 10, 0, 150, ActionStandardTouch})
	c.Set(ActionPrudentSynthesis, CatalogEntry{"Prudent Synthesis", 18, 5, 180, 0, ActionNone})
	c.Set(ActionTrainedFinesse, CatalogEntry{"Trained Finesse", 32, 0, 0, 100, ActionNone})
	return c
}

// Set replaces the entry for a and recomputes its scaled multipliers.
func (c *Catalog) Set(a Action, e CatalogEntry) {
	c.entries[a] = e
	c.progress[a] = e.ProgressPct * BaseProgressMultiplier / 100
	c.quality[a] = e.QualityPct * BaseQualityMultiplier / 100
}

// Validate rejects tables the search cannot run on. Every turn must use
// up CP or durability, and no action may restore durability for free, or a
// craft could return to a state it is still solving. Every single-turn
// potency must fit a 16-bit frontier half even with every multiplier at its
// maximum.
func (c *Catalog) Validate() error {
	r := NewRules(c, 0)
	var peakProgress, peakQuality State
	peakProgress.Condition = CondMalleable
	peakProgress.Effects[EffMuscleMemory] = 1
	peakProgress.Effects[EffVeneration] = 1
	peakQuality.Condition = CondExcellent
	peakQuality.Effects[EffInnerQuiet] = maxInnerQuiet
	peakQuality.Effects[EffGreatStrides] = 1
	peakQuality.Effects[EffInnovation] = 1

	for _, a := range allActions {
		e := c.entries[a]
		if e.CPCost == 0 && e.DurabilityCost == 0 {
			return fmt.Errorf("%s costs neither CP nor durability", a)
		}
		if e.CPCost == 0 && (a == ActionManipulation || a == ActionMasterMend) {
			return fmt.Errorf("%s restores durability and must cost CP", a)
		}
		if p := r.ProgressPotency(peakProgress, a); p > halfMax {
			return fmt.Errorf("%s progress %d%% can yield %d progress in one turn (max %d)", a, e.ProgressPct, p, halfMax)
		}
		if q := r.QualityPotency(peakQuality, a); q > halfMax {
			return fmt.Errorf("%s quality %d%% can yield %d quality in one turn (max %d)", a, e.QualityPct, q, halfMax)
		}
	}
	return nil
}

// Entry returns the catalog entry for a.
func (c *Catalog) Entry(a Action) CatalogEntry { return c.entries[a] }

// DisplayName is the human-readable action name used in plan output.
func (c *Catalog) DisplayName(a Action) string {
	if name := c.entries[a].Name; name != "" {
		return name
	}
	return a.String()
}

func (c *Catalog) cpCost(a Action) int     { return c.entries[a].CPCost }
func (c *Catalog) baseDurCost(a Action) int { return c.entries[a].DurabilityCost }
func (c *Catalog) combo(a Action) Action    { return c.entries[a].Combo }

// pim and qim are the scaled base multipliers the potency rules start from.
func (c *Catalog) pim(a Action) int { return c.progress[a] }
func (c *Catalog) qim(a Action) int { return c.quality[a] }

// clone returns an independent copy, so overrides never touch a shared table.
func (c *Catalog) clone() *Catalog {
	cp := *c
	return &cp
}

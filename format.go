package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	actionColor  = color.New(color.FgCyan).SprintFunc()
	headingColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow).SprintFunc()
)

// StepDetail is the serializable form of one plan step.
type StepDetail struct {
	Turn       int    `json:"turn"`
	Action     string `json:"action"`
	Name       string `json:"name"`
	Progress   uint32 `json:"progress"`
	Quality    uint32 `json:"quality"`
	CP         int    `json:"cp"`
	Durability int    `json:"durability"`
}

// RunResult is the serializable outcome of one solve and plan run.
type RunResult struct {
	RunID        string       `json:"runId,omitempty"`
	Condition    string       `json:"condition"`
	MinProgress  uint32       `json:"minProgress"`
	MaxQuality   uint32       `json:"maxQuality"`
	Feasible     bool         `json:"feasible"`
	States       int          `json:"states"`
	FrontierSize int          `json:"frontierSize"`
	Plan         []StepDetail `json:"plan,omitempty"`
	Progress     uint32       `json:"progress"`
	Quality      uint32       `json:"quality"`
	TimeMs       int64        `json:"timeMs"`
	Error        string       `json:"error,omitempty"`
}

// newRunResult collects what a CLI or Lambda caller reports about a run.
// plan is nil when the target was infeasible.
func newRunResult(cat *Catalog, cfg Config, s *Solver, front Frontier, plan *Plan, elapsed time.Duration) RunResult {
	minProgress := uint32(cfg.MinProgress)
	maxQ, feasible := front.MaxQuality(minProgress)
	r := RunResult{
		Condition:    cfg.condition().String(),
		MinProgress:  minProgress,
		MaxQuality:   maxQ,
		Feasible:     feasible && plan != nil,
		States:       s.Stats().States,
		FrontierSize: front.Len(),
		TimeMs:       elapsed.Milliseconds(),
	}
	if plan == nil {
		return r
	}
	r.Progress, r.Quality = plan.Progress, plan.Quality
	for i, st := range plan.Steps {
		r.Plan = append(r.Plan, StepDetail{
			Turn:       i + 1,
			Action:     st.Action.String(),
			Name:       cat.DisplayName(st.Action),
			Progress:   st.Progress,
			Quality:    st.Quality,
			CP:         st.After.CP,
			Durability: st.After.Durability,
		})
	}
	return r
}

// FormatPlan renders the action sequence as "A >> B >> C".
func FormatPlan(cat *Catalog, plan *Plan) string {
	names := make([]string, len(plan.Steps))
	for i, st := range plan.Steps {
		names[i] = actionColor(cat.DisplayName(st.Action))
	}
	return strings.Join(names, " >> ")
}

// FormatFrontier lists every frontier entry as "(progress, quality)".
func FormatFrontier(f Frontier) string {
	var b strings.Builder
	for i := range f {
		if i > 0 {
			b.WriteByte(' ')
		}
		p, q := f.At(i)
		fmt.Fprintf(&b, "(%d, %d)", p, q)
	}
	return b.String()
}

// FormatSummary produces the human-readable report of a run.
func FormatSummary(cat *Catalog, cfg Config, r RunResult, plan *Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s condition=%s unique states=%d frontier=%d time=%dms\n",
		headingColor("[solve]"), r.Condition, r.States, r.FrontierSize, r.TimeMs)

	if !r.Feasible || plan == nil {
		fmt.Fprintf(&b, "%s progress %d is unreachable\n", warnColor("[plan]"), r.MinProgress)
		return b.String()
	}

	fmt.Fprintf(&b, "%s max quality %d / %d at progress >= %d\n",
		headingColor("[plan]"), r.MaxQuality, cfg.MaxQuality, r.MinProgress)
	fmt.Fprintf(&b, "%s\n", FormatPlan(cat, plan))

	for _, st := range r.Plan {
		fmt.Fprintf(&b, "  %2d. %-20s +%-5d progress +%-5d quality  cp=%-4d dur=%d\n",
			st.Turn, st.Name, st.Progress, st.Quality, st.CP, st.Durability)
	}
	fmt.Fprintf(&b, "total: progress %d, quality %d\n", r.Progress, r.Quality)
	return b.String()
}

package main

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrInfeasible means no sequence of legal actions reaches the required
// progress before durability runs out. There is nothing to retry: the
// search has already considered every continuation.
var ErrInfeasible = errors.New("required progress is unreachable")

// Step is one turn of a plan.
type Step struct {
	Action   Action
	Progress uint32 // progress produced this turn
	Quality  uint32 // quality produced this turn
	After    State
}

// Plan is a complete craft from the initial state to zero durability.
type Plan struct {
	Target   uint32
	Steps    []Step
	Progress uint32
	Quality  uint32
}

// Actions returns the chosen actions in order.
func (p *Plan) Actions() []Action {
	out := make([]Action, len(p.Steps))
	for i, st := range p.Steps {
		out[i] = st.Action
	}
	return out
}

// Plan reconstructs the best action sequence from init that reaches at
// least minProgress, one BestAction query per turn.
func (s *Solver) Plan(ctx context.Context, init State, minProgress uint32) (*Plan, error) {
	ctx, span := tracer().Start(ctx, "solver.Plan")
	defer span.End()

	if _, ok := s.memo[init]; !ok {
		s.Solve(ctx, init)
	}

	plan := &Plan{Target: minProgress}
	cur, remaining := init, minProgress
	for cur.Durability > 0 {
		a := s.BestAction(cur, remaining)
		if a == ActionNone {
			return nil, s.infeasible(span, len(plan.Steps), remaining)
		}
		prog := s.rules.ProgressPotency(cur, a)
		qual := s.rules.QualityPotency(cur, a)
		cur = s.rules.UseAction(cur, a)
		remaining = subFloor(remaining, prog)

		plan.Steps = append(plan.Steps, Step{Action: a, Progress: prog, Quality: qual, After: cur})
		plan.Progress += prog
		plan.Quality += qual
		s.log.Debug("plan.step", "turn", len(plan.Steps), "action", a.String(),
			"progress", prog, "quality", qual, "remaining", remaining)
	}
	if remaining > 0 {
		return nil, s.infeasible(span, len(plan.Steps), remaining)
	}

	planResults.WithLabelValues("ok").Inc()
	span.SetAttributes(
		attribute.Int("plan.steps", len(plan.Steps)),
		attribute.Int("plan.quality", int(plan.Quality)),
	)
	return plan, nil
}

func (s *Solver) infeasible(span trace.Span, turn int, remaining uint32) error {
	planResults.WithLabelValues("infeasible").Inc()
	span.SetStatus(codes.Error, ErrInfeasible.Error())
	return fmt.Errorf("turn %d, %d progress still required: %w", turn+1, remaining, ErrInfeasible)
}

package main

import (
	"context"
	"errors"
	"time"
)

// runOutput bundles everything one solve-and-plan run produced.
type runOutput struct {
	Result   RunResult
	Plan     *Plan // nil when infeasible
	Frontier Frontier
	Stats    SolveStats
}

// runCraft solves the initial state of cfg and reconstructs the best plan
// with a fresh Solver. An infeasible target is reported through
// Result.Feasible and a wrapped ErrInfeasible; any other error means the
// run did not happen.
func runCraft(ctx context.Context, cat *Catalog, cfg Config) (runOutput, error) {
	s, err := NewSolver(cat, cfg)
	if err != nil {
		return runOutput{}, err
	}
	init := cfg.InitialState()

	start := time.Now()
	front := s.Solve(ctx, init)
	plan, planErr := s.Plan(ctx, init, uint32(cfg.MinProgress))
	elapsed := time.Since(start)
	if planErr != nil && !errors.Is(planErr, ErrInfeasible) {
		return runOutput{}, planErr
	}

	out := runOutput{
		Result:   newRunResult(cat, cfg, s, front, plan, elapsed),
		Plan:     plan,
		Frontier: front,
		Stats:    s.Stats(),
	}
	if planErr != nil {
		out.Result.Error = planErr.Error()
	}
	return out, planErr
}

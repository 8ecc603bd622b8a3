package main

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// ── Solver ──────────────────────────────────────────────────────────

// Solver computes and memoizes the Pareto frontier of every state it
// reaches. It is single-threaded: the memo table and the candidate arena
// belong to one instance, so concurrent work needs one Solver per goroutine.
type Solver struct {
	rules  Rules
	pruner Pruner

	memo  map[State]Frontier
	arena frontierBuilder
	stats SolveStats

	log *slog.Logger
}

// SolveStats counts the work a Solver has done over its lifetime.
type SolveStats struct {
	States     int // distinct states memoized
	CacheHits  int // lookups answered from the memo table
	Expansions int // (state, action) pairs explored
	PeakArena  int // largest candidate arena size seen
}

// NewSolver returns a solver over cat with the limits and pruning mode of
// cfg. cat must not be modified afterwards.
func NewSolver(cat *Catalog, cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	rules := NewRules(cat, cfg.MaxDurability)
	pruner, err := newPruner(cfg.Pruning, rules)
	if err != nil {
		return nil, err
	}
	return &Solver{
		rules:  rules,
		pruner: pruner,
		memo:   make(map[State]Frontier),
		log:    newLogger("solver"),
	}, nil
}

// Rules exposes the game rules the solver searches under.
func (s *Solver) Rules() Rules { return s.rules }

// Stats returns a snapshot of the work counters.
func (s *Solver) Stats() SolveStats {
	st := s.stats
	st.PeakArena = s.arena.peak
	return st
}

func (s *Solver) allowed(st State, a Action) bool {
	return s.rules.CanUseAction(st, a) && s.pruner.Allow(st, a)
}

// ── Search ──────────────────────────────────────────────────────────

// expand leaves the frontier of st, with inc added to every entry, on top
// of the arena. It reports whether adding inc saturated any entry.
func (s *Solver) expand(st State, inc Entry) bool {
	if f, ok := s.memo[st]; ok {
		s.stats.CacheHits++
		return s.arena.appendOffset(f, inc)
	}

	fr := s.arena.begin()
	for _, a := range allActions {
		if !s.allowed(st, a) {
			continue
		}
		s.stats.Expansions++
		prog := s.rules.ProgressPotency(st, a)
		qual := s.rules.QualityPotency(st, a)
		next := s.rules.UseAction(st, a)
		if next.Durability > 0 {
			lo := s.arena.mark()
			sat := s.expand(next, pack(prog, qual))
			s.arena.closeRun(&fr, lo, sat)
		} else if prog != 0 {
			s.arena.push(pack(prog, qual))
		}
	}

	front := s.arena.reduce(fr)
	s.memo[st] = slices.Clone(front)
	s.stats.States++
	return s.arena.offsetTail(fr.start, inc)
}

// frontier returns the memoized frontier of st, solving it first if needed.
func (s *Solver) frontier(st State) Frontier {
	if f, ok := s.memo[st]; ok {
		return f
	}
	s.expand(st, 0)
	s.arena.reset()
	return s.memo[st]
}

// Solve returns the Pareto frontier of st. A state solved before is
// answered from the memo table without any recomputation.
func (s *Solver) Solve(ctx context.Context, st State) Frontier {
	if f, ok := s.memo[st]; ok {
		s.stats.CacheHits++
		solverCacheHitsTotal.Inc()
		return f
	}

	_, span := tracer().Start(ctx, "solver.Solve")
	defer span.End()

	before := s.stats
	start := time.Now()
	f := s.frontier(st)
	elapsed := time.Since(start)

	added := s.stats.States - before.States
	solverStatesTotal.Add(float64(added))
	solverCacheHitsTotal.Add(float64(s.stats.CacheHits - before.CacheHits))
	solveDuration.Observe(elapsed.Seconds())
	frontierSize.Observe(float64(len(f)))

	span.SetAttributes(
		attribute.Int("solver.states_added", added),
		attribute.Int("solver.frontier_size", len(f)),
		attribute.Int("solver.arena_peak", s.arena.peak),
	)
	s.log.Debug("solve.done",
		"state", st.String(),
		"states", len(s.memo),
		"added", added,
		"frontier", len(f),
		"arena_peak", s.arena.peak,
		"elapsed", elapsed,
	)
	return f
}

// ── Queries ─────────────────────────────────────────────────────────

// maxQuality is MaxQuality that also reports whether any entry met the
// bound, which tells an infeasible continuation from a zero-quality one.
func (s *Solver) maxQuality(st State, minProgress uint32) (uint32, bool) {
	if st.Durability == 0 {
		return 0, false
	}
	return s.frontier(st).MaxQuality(minProgress)
}

// MaxQuality returns the highest quality reachable from st while still
// making at least minProgress progress, or 0 when no sequence does.
func (s *Solver) MaxQuality(st State, minProgress uint32) uint32 {
	q, _ := s.maxQuality(st, minProgress)
	return q
}

// BestAction returns the action that maximizes final quality from st while
// still reaching minProgress. Ties go to the earlier action in catalog
// order. It returns ActionNone when the craft is over or the bound cannot
// be met.
func (s *Solver) BestAction(st State, minProgress uint32) Action {
	if st.Durability == 0 {
		return ActionNone
	}
	s.frontier(st)

	best, bestQual, found := ActionNone, uint32(0), false
	for _, a := range allActions {
		if !s.allowed(st, a) {
			continue
		}
		prog := s.rules.ProgressPotency(st, a)
		qual := s.rules.QualityPotency(st, a)
		next := s.rules.UseAction(st, a)
		if next.Durability > 0 {
			rest, ok := s.maxQuality(next, subFloor(minProgress, prog))
			if !ok {
				continue
			}
			qual += rest
		} else if prog == 0 || prog < minProgress {
			// A zero-progress finish is never a frontier entry, even at min 0.
			continue
		}
		if !found || qual > bestQual {
			best, bestQual, found = a, qual, true
		}
	}
	return best
}

// subFloor returns a-b, or 0 when b covers a.
func subFloor(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

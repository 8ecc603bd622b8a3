package main

import (
	"cmp"
	"slices"
	"sort"
)

// Entry is one reachable (progress, quality) outcome packed as
// progress<<16 | quality, so that ordering entries orders by progress first
// and quality second.
type Entry uint32

const halfMax = 0xffff

func pack(progress, quality uint32) Entry {
	return Entry(progress<<16 | quality)
}

func (e Entry) Progress() uint32 { return uint32(e) >> 16 }
func (e Entry) Quality() uint32  { return uint32(e) & halfMax }

// offset adds inc to e half by half. A half that would overflow is pinned
// at 0xffff and reported, since a pinned run may no longer be sorted.
func (e Entry) offset(inc Entry) (Entry, bool) {
	p := e.Progress() + inc.Progress()
	q := e.Quality() + inc.Quality()
	saturated := false
	if p > halfMax {
		p, saturated = halfMax, true
	}
	if q > halfMax {
		q, saturated = halfMax, true
	}
	return pack(p, q), saturated
}

// Frontier is a Pareto frontier: progress strictly decreasing, quality
// strictly increasing. Frontiers returned by a Solver are shared with its
// memo table and must be treated as read-only.
type Frontier []Entry

func (f Frontier) Len() int { return len(f) }

// At returns the i-th entry unpacked.
func (f Frontier) At(i int) (progress, quality uint32) {
	return f[i].Progress(), f[i].Quality()
}

// MaxQuality returns the quality of the entry with the smallest progress
// still >= minProgress, which is the best quality that meets the bound.
func (f Frontier) MaxQuality(minProgress uint32) (uint32, bool) {
	i := sort.Search(len(f), func(i int) bool { return f[i].Progress() < minProgress })
	if i == 0 {
		return 0, false
	}
	return f[i-1].Quality(), true
}

// frame marks where one state's candidates begin in the arena.
type frame struct {
	start    int  // first arena index owned by this state
	runs     int  // first run boundary owned by this state
	unsorted bool // some run lost its order through saturation
}

// frontierBuilder is the candidate arena shared by every level of one
// solver's recursion. Each state appends its candidates above its
// children's, as sorted runs whose starts are tracked in bounds, then
// reduces them in place to a frontier. Buffers grow as needed.
type frontierBuilder struct {
	buf     []Entry
	bounds  []int // absolute start index of every open run
	scratch []Entry
	edges   []int
	peak    int
}

// sortThreshold is the size below which a plain sort beats merge
// bookkeeping regardless of the number of runs.
const sortThreshold = 10

func (b *frontierBuilder) begin() frame {
	return frame{start: len(b.buf), runs: len(b.bounds)}
}

// mark returns the arena position a child's run will start at.
func (b *frontierBuilder) mark() int { return len(b.buf) }

// closeRun records the entries appended since lo as one sorted run.
func (b *frontierBuilder) closeRun(f *frame, lo int, saturated bool) {
	if len(b.buf) == lo {
		return
	}
	b.bounds = append(b.bounds, lo)
	if saturated {
		f.unsorted = true
	}
	b.touch()
}

// push adds a terminal candidate as a run of one.
func (b *frontierBuilder) push(e Entry) {
	b.bounds = append(b.bounds, len(b.buf))
	b.buf = append(b.buf, e)
	b.touch()
}

// appendOffset copies src onto the arena with inc added to every entry.
func (b *frontierBuilder) appendOffset(src Frontier, inc Entry) bool {
	saturated := false
	for _, e := range src {
		v, sat := e.offset(inc)
		saturated = saturated || sat
		b.buf = append(b.buf, v)
	}
	b.touch()
	return saturated
}

// offsetTail adds inc to every arena entry from index from onwards.
func (b *frontierBuilder) offsetTail(from int, inc Entry) bool {
	if inc == 0 {
		return false
	}
	saturated := false
	for i := from; i < len(b.buf); i++ {
		v, sat := b.buf[i].offset(inc)
		saturated = saturated || sat
		b.buf[i] = v
	}
	return saturated
}

func (b *frontierBuilder) touch() {
	if len(b.buf) > b.peak {
		b.peak = len(b.buf)
	}
}

// reset drops everything, keeping capacity for the next top-level solve.
func (b *frontierBuilder) reset() {
	b.buf = b.buf[:0]
	b.bounds = b.bounds[:0]
}

// reduce orders the candidates of f descending and keeps the skyline. The
// frontier is left at the top of the arena and returned as a view into it.
func (b *frontierBuilder) reduce(f frame) Frontier {
	items := b.buf[f.start:]
	runs := b.bounds[f.runs:]
	n := len(items)

	if n < sortThreshold || n < 2*len(runs) || f.unsorted {
		slices.SortFunc(items, func(x, y Entry) int { return cmp.Compare(y, x) })
	} else {
		b.mergeRuns(f.start, runs)
	}

	if n > 0 {
		k := 0
		for i := 1; i < n; i++ {
			if items[i].Quality() > items[k].Quality() {
				k++
				items[k] = items[i]
			}
		}
		n = k + 1
	}
	b.buf = b.buf[:f.start+n]
	b.bounds = b.bounds[:f.runs]
	return Frontier(b.buf[f.start : f.start+n])
}

// mergeRuns merges adjacent runs pairwise, bottom up, ping-ponging between
// the arena and the scratch buffer so no pass reads what it writes.
func (b *frontierBuilder) mergeRuns(start int, runs []int) {
	n := len(b.buf) - start
	if cap(b.scratch) < n {
		b.scratch = make([]Entry, n, 2*n)
	}
	src, dst := b.buf[start:], b.scratch[:n]

	edges := b.edges[:0]
	for _, r := range runs {
		edges = append(edges, r-start)
	}
	edges = append(edges, n)

	inScratch := false
	for len(edges) > 2 {
		w, i := 0, 0
		for ; i+2 < len(edges); i += 2 {
			lo, mid, hi := edges[i], edges[i+1], edges[i+2]
			mergeDesc(dst[lo:hi], src[lo:mid], src[mid:hi])
			edges[w] = lo
			w++
		}
		if i+1 < len(edges) {
			lo, hi := edges[i], edges[i+1]
			copy(dst[lo:hi], src[lo:hi])
			edges[w] = lo
			w++
		}
		edges[w] = n
		edges = edges[:w+1]
		src, dst = dst, src
		inScratch = !inScratch
	}
	if inScratch {
		copy(b.buf[start:], src)
	}
	b.edges = edges
}

// mergeDesc merges two descending runs into dst, which must hold both.
func mergeDesc(dst, x, y []Entry) {
	i, j, k := 0, 0, 0
	for i < len(x) && j < len(y) {
		if x[i] >= y[j] {
			dst[k] = x[i]
			i++
		} else {
			dst[k] = y[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], x[i:])
	copy(dst[k:], y[j:])
}

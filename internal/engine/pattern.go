package engine

import (
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// pattern is one combination of demand pieces assigned to a single stock length.
type pattern struct {
	counts   []int // pieces per demand class
	sum      float64
	pieces   int
	distinct int
	cuts     int // saw cuts charged
	offcut   float64
}

// waste is everything on the rod that is not a cut piece: kerf plus offcut.
func (p pattern) waste(stock float64) float64 {
	return stock - p.sum
}

func (p pattern) usedLength(kerf float64) float64 {
	return p.sum + kerf*float64(p.cuts)
}

func (p pattern) key() string {
	var b strings.Builder
	for i, c := range p.counts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// fitLayout places pieces totalling sum on a rod of length stock.
//
// Every piece is separated by one kerf, and the last piece is cut off the
// offcut with one more. That trailing cut is skipped only when nothing is
// left over. A remainder thinner than the blade cannot be cut off, so the
// pieces do not fit.
func fitLayout(stock, sum float64, pieces int, kerf, eps float64) (cuts int, offcut float64, ok bool) {
	if pieces == 0 {
		return 0, stock, true
	}
	r := stock - sum - kerf*float64(pieces-1)
	switch {
	case math.Abs(r) <= eps:
		return pieces - 1, 0, true
	case r >= kerf-eps:
		return pieces, math.Max(0, r-kerf), true
	default:
		return 0, 0, false
	}
}

// generator builds candidate cutting patterns for stock lengths. It is
// read-only after construction and safe for concurrent use.
type generator struct {
	lengths       []float64 // demand lengths, descending
	kerf          float64
	tol           float64
	budget        int
	minRatio      float64
	maxCandidates int
}

func (g *generator) eps(stock float64) float64 {
	return g.tol * math.Max(1, stock)
}

// fits reports whether one more piece of length l can join pieces totalling sum.
func (g *generator) fits(stock, sum float64, pieces int, l float64) bool {
	_, _, ok := fitLayout(stock, sum+l, pieces+1, g.kerf, g.eps(stock))
	return ok
}

// build evaluates counts against the stock length.
func (g *generator) build(stock float64, counts []int) (pattern, bool) {
	p := pattern{counts: counts}
	for i, c := range counts {
		if c > 0 {
			p.sum += g.lengths[i] * float64(c)
			p.pieces += c
			p.distinct++
		}
	}
	if p.pieces == 0 {
		return pattern{}, false
	}
	cuts, offcut, ok := fitLayout(stock, p.sum, p.pieces, g.kerf, g.eps(stock))
	if !ok {
		return pattern{}, false
	}
	p.cuts = cuts
	p.offcut = offcut
	return p, true
}

// fill adds pieces longest first until nothing else fits or limits are reached.
// counts is modified in place and returned.
func (g *generator) fill(stock float64, counts, limits []int) []int {
	var sum float64
	pieces := 0
	for i, c := range counts {
		sum += g.lengths[i] * float64(c)
		pieces += c
	}
	for i, l := range g.lengths {
		for counts[i] < limits[i] && g.fits(stock, sum, pieces, l) {
			counts[i]++
			sum += l
			pieces++
		}
	}
	return counts
}

// better orders patterns: least waste first, then fewer distinct lengths,
// then more pieces, then more of the longer lengths.
func (g *generator) better(a, b pattern, stock float64) bool {
	if wa, wb := a.waste(stock), b.waste(stock); math.Abs(wa-wb) > g.eps(stock) {
		return wa < wb
	}
	if a.distinct != b.distinct {
		return a.distinct < b.distinct
	}
	if a.pieces != b.pieces {
		return a.pieces > b.pieces
	}
	for i := range a.counts {
		if a.counts[i] != b.counts[i] {
			return a.counts[i] > b.counts[i]
		}
	}
	return false
}

// search explores piece combinations depth first. Classes are visited longest
// first and each count is tried from the largest that fits downwards, so the
// first leaf is the greedy fill and later leaves backtrack from it. The walk
// stops after budget nodes. A seed >= 0 forces one piece of that class.
func (g *generator) search(stock float64, limits []int, seed, budget int) []pattern {
	counts := make([]int, len(g.lengths))
	var sum float64
	pieces := 0
	if seed >= 0 {
		counts[seed] = 1
		sum = g.lengths[seed]
		pieces = 1
	}

	var found []pattern
	nodes := 0
	var visit func(idx int, sum float64, pieces int)
	visit = func(idx int, sum float64, pieces int) {
		if nodes >= budget {
			return
		}
		nodes++
		if idx == len(g.lengths) {
			if p, ok := g.build(stock, append([]int(nil), counts...)); ok {
				found = append(found, p)
			}
			return
		}

		l := g.lengths[idx]
		avail := limits[idx] - counts[idx]
		k := 0
		for k < avail && g.fits(stock, sum+l*float64(k), pieces+k, l) {
			k++
		}
		for ; k >= 0; k-- {
			counts[idx] += k
			visit(idx+1, sum+l*float64(k), pieces+k)
			counts[idx] -= k
			if nodes >= budget {
				return
			}
		}
	}
	visit(0, sum, pieces)
	return found
}

func (g *generator) efficiency(p pattern, stock float64) float64 {
	return p.usedLength(g.kerf) / stock
}

// candidates returns the retained patterns for one stock length, best first.
// limits caps the pieces of each demand class. Single-piece patterns for every
// fitting demand length are always part of the result.
func (g *generator) candidates(stock float64, limits []int) []pattern {
	seen := make(map[string]bool)
	var pool, fallbacks []pattern
	add := func(p pattern) {
		k := p.key()
		if !seen[k] {
			seen[k] = true
			pool = append(pool, p)
		}
	}

	for i, l := range g.lengths {
		if limits[i] == 0 || !g.fits(stock, 0, 0, l) {
			continue
		}
		single := make([]int, len(g.lengths))
		single[i] = 1
		if p, ok := g.build(stock, single); ok {
			fallbacks = append(fallbacks, p)
		}

		seeded := make([]int, len(g.lengths))
		seeded[i] = 1
		if p, ok := g.build(stock, g.fill(stock, seeded, limits)); ok {
			add(p)
		}
	}
	if len(fallbacks) == 0 {
		return nil
	}
	for _, p := range g.search(stock, limits, -1, g.budget) {
		add(p)
	}

	best := 0.0
	for _, p := range pool {
		best = math.Max(best, g.efficiency(p, stock))
	}
	threshold := best*g.minRatio - g.tol

	kept := make([]pattern, 0, len(pool))
	for _, p := range pool {
		if g.efficiency(p, stock) >= threshold {
			kept = append(kept, p)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return g.better(kept[i], kept[j], stock)
	})
	if len(kept) > g.maxCandidates {
		kept = kept[:g.maxCandidates]
	}

	keptKeys := make(map[string]bool, len(kept))
	for _, p := range kept {
		keptKeys[p.key()] = true
	}
	for _, f := range fallbacks {
		if !keptKeys[f.key()] {
			kept = append(kept, f)
		}
	}
	return kept
}

// generateAll builds candidates for every stock class. The demand limits are
// only read, so classes can be explored concurrently; results are indexed by
// class so the outcome does not depend on scheduling.
func (g *generator) generateAll(stock []lengthClass, limits []int, parallel bool) [][]pattern {
	out := make([][]pattern, len(stock))
	if !parallel || len(stock) < 2 {
		for i, s := range stock {
			out[i] = g.candidates(s.length, limits)
		}
		return out
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range stock {
		eg.Go(func() error {
			out[i] = g.candidates(s.length, limits)
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

package engine

import (
	"github.com/rs/zerolog"
)

// allocation is one physical stock rod and the piece counts assigned to it.
type allocation struct {
	stock  float64
	counts []int
}

// allocator commits patterns to physical stock rods until demand is met or
// no remaining stock can produce what is left.
type allocator struct {
	gen          *generator
	stock        []lengthClass // descending
	candidates   [][]pattern   // per stock class
	stockLeft    []int
	demandLeft   []int
	repairBudget int
	log          zerolog.Logger
}

func newAllocator(gen *generator, n normalized, candidates [][]pattern, repairBudget int, log zerolog.Logger) *allocator {
	return &allocator{
		gen:          gen,
		stock:        n.stock,
		candidates:   candidates,
		stockLeft:    countsOf(n.stock),
		demandLeft:   countsOf(n.demand),
		repairBudget: repairBudget,
		log:          log,
	}
}

// run allocates rods and returns them in allocation order along with the
// demand that could not be produced.
func (a *allocator) run() ([]allocation, []lengthClass) {
	var allocs []allocation
	var unfulfilled []lengthClass

	for {
		d := a.nextDemand()
		if d < 0 {
			break
		}
		length := a.gen.lengths[d]

		s := a.pickStock(d)
		if s < 0 {
			// Nothing left can hold this length, so the rest of it is given up.
			a.log.Debug().
				Float64("length", length).
				Int("quantity", a.demandLeft[d]).
				Msg("no remaining stock fits cut length")
			unfulfilled = append(unfulfilled, lengthClass{length: length, count: a.demandLeft[d]})
			a.demandLeft[d] = 0
			continue
		}

		p := a.choose(s, d)
		a.stockLeft[s]--
		for i, c := range p.counts {
			a.demandLeft[i] -= c
		}
		allocs = append(allocs, allocation{stock: a.stock[s].length, counts: p.counts})

		a.log.Debug().
			Float64("stock", a.stock[s].length).
			Int("pieces", p.pieces).
			Float64("offcut", p.offcut).
			Int("stock_left", a.stockLeft[s]).
			Msg("allocated stock rod")
	}
	return allocs, unfulfilled
}

// nextDemand returns the longest demand class with pieces still required.
func (a *allocator) nextDemand() int {
	for i, n := range a.demandLeft {
		if n > 0 {
			return i
		}
	}
	return -1
}

// pickStock returns the shortest stock class with rods left that can hold
// one piece of demand class d, or -1.
func (a *allocator) pickStock(d int) int {
	l := a.gen.lengths[d]
	for s := len(a.stock) - 1; s >= 0; s-- {
		if a.stockLeft[s] > 0 && a.gen.fits(a.stock[s].length, 0, 0, l) {
			return s
		}
	}
	return -1
}

// choose selects the pattern for the next rod of stock class s. The pattern
// always contains at least one piece of demand class d.
func (a *allocator) choose(s, d int) pattern {
	stock := a.stock[s].length

	seed := make([]int, len(a.gen.lengths))
	seed[d] = 1
	best, _ := a.gen.build(stock, a.gen.fill(stock, seed, a.demandLeft))

	for _, c := range a.candidates[s] {
		if c.counts[d] == 0 {
			continue
		}
		r, ok := a.repair(stock, c)
		if !ok || r.counts[d] == 0 {
			continue
		}
		if a.gen.better(r, best, stock) {
			best = r
		}
	}

	// Precomputed candidates were built for the full demand. Once classes run
	// low they may no longer fill the rod, so search again against what is left.
	if best.offcut > (1-a.gen.minRatio)*stock {
		for _, p := range a.gen.search(stock, a.demandLeft, d, a.repairBudget) {
			if p.counts[d] > 0 && a.gen.better(p, best, stock) {
				best = p
			}
		}
	}
	return best
}

// repair clips a candidate to the remaining demand and tops it up greedily.
func (a *allocator) repair(stock float64, c pattern) (pattern, bool) {
	counts := make([]int, len(c.counts))
	for i, n := range c.counts {
		counts[i] = min(n, a.demandLeft[i])
	}
	return a.gen.build(stock, a.gen.fill(stock, counts, a.demandLeft))
}

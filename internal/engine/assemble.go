package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/RodCut/internal/model"
)

// assemble turns allocations into per-rod usage records. Cuts are listed
// longest first. Rods without pieces are not emitted.
//
// An allocation that does not fit its rod is a bug in the allocator, not bad
// input, and panics.
func assemble(allocs []allocation, lengths []float64, kerf, tol float64) []model.StockRodUsage {
	plan := make([]model.StockRodUsage, 0, len(allocs))
	for _, a := range allocs {
		var cuts []model.CutPiece
		var total float64
		for i, c := range a.counts {
			for k := 0; k < c; k++ {
				cuts = append(cuts, model.CutPiece{Length: lengths[i]})
				total += lengths[i]
			}
		}
		if len(cuts) == 0 {
			continue
		}

		eps := tol * math.Max(1, a.stock)
		sawCuts, _, ok := fitLayout(a.stock, total, len(cuts), kerf, eps)
		if !ok {
			panic(fmt.Sprintf("engine: %d pieces totalling %.6f do not fit stock rod %.6f", len(cuts), total, a.stock))
		}

		kerfWaste := kerf * float64(sawCuts)
		offcut := a.stock - total - kerfWaste
		if offcut < 0 {
			if offcut < -eps {
				panic(fmt.Sprintf("engine: negative offcut %.6f on stock rod %.6f", offcut, a.stock))
			}
			offcut = 0
		}

		plan = append(plan, model.StockRodUsage{
			StockRodLength:  a.stock,
			Cuts:            cuts,
			TotalCutsLength: total,
			KerfWaste:       kerfWaste,
			OffcutWaste:     offcut,
		})
	}
	return plan
}

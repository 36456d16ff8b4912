package engine

import (
	"sort"

	"github.com/piwi3910/RodCut/internal/model"
)

// Summarize aggregates the per-rod usage of a plan. Unfulfilled cuts are
// reported longest first. The waste percentage is relative to the stock
// used and is 0 when no stock was used.
func Summarize(plan []model.StockRodUsage, unfulfilled []model.UnfulfilledCut) model.Summary {
	var s model.Summary
	for _, u := range plan {
		s.TotalStockUsedLength += u.StockRodLength
		s.TotalCutPiecesLength += u.TotalCutsLength
		s.TotalKerfWaste += u.KerfWaste
		s.TotalOffcutWaste += u.OffcutWaste
	}
	s.TotalWaste = s.TotalKerfWaste + s.TotalOffcutWaste
	if s.TotalStockUsedLength > 0 {
		s.WastePercentage = s.TotalWaste / s.TotalStockUsedLength * 100
	}

	s.UnfulfilledCuts = make([]model.UnfulfilledCut, 0, len(unfulfilled))
	for _, u := range unfulfilled {
		if u.Quantity > 0 {
			s.UnfulfilledCuts = append(s.UnfulfilledCuts, u)
		}
	}
	sort.SliceStable(s.UnfulfilledCuts, func(i, j int) bool {
		return s.UnfulfilledCuts[i].Length > s.UnfulfilledCuts[j].Length
	})
	return s
}

package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/RodCut/internal/model"
)

// lengthClass is a bucket of rods or pieces of equal length.
type lengthClass struct {
	length float64
	count  int
}

// normalized is the sanitized optimizer input. Both slices are sorted by
// descending length.
type normalized struct {
	kerf   float64
	stock  []lengthClass
	demand []lengthClass
}

// normalize validates the request and groups stock and demand into length classes.
// Standard and leftover stock are merged into one supply.
func normalize(req model.PlanRequest, tol float64) (normalized, error) {
	if !(req.BladeThickness > 0) || math.IsInf(req.BladeThickness, 0) {
		return normalized{}, invalidInput("blade thickness must be positive, got %v", req.BladeThickness)
	}

	supply := make([]model.RodSpec, 0, len(req.StockRods)+len(req.LeftoverRods))
	supply = append(supply, req.StockRods...)
	supply = append(supply, req.LeftoverRods...)

	stock := groupByLength(supply, tol)
	if len(stock) == 0 {
		return normalized{}, invalidInput("no stock rods with positive length and quantity")
	}
	demand := groupByLength(req.RequiredCuts, tol)
	if len(demand) == 0 {
		return normalized{}, invalidInput("no required cuts with positive length and quantity")
	}

	return normalized{
		kerf:   req.BladeThickness,
		stock:  stock,
		demand: demand,
	}, nil
}

// groupByLength drops invalid specs, sorts by descending length and merges
// tolerance-equal lengths by summing their quantities.
func groupByLength(specs []model.RodSpec, tol float64) []lengthClass {
	valid := make([]model.RodSpec, 0, len(specs))
	for _, s := range specs {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Length > valid[j].Length
	})

	var classes []lengthClass
	for _, s := range valid {
		n := len(classes)
		if n > 0 && model.SameLength(classes[n-1].length, s.Length, tol) {
			classes[n-1].count += s.Quantity
			continue
		}
		classes = append(classes, lengthClass{length: s.Length, count: s.Quantity})
	}
	return classes
}

func lengthsOf(classes []lengthClass) []float64 {
	out := make([]float64, len(classes))
	for i, c := range classes {
		out[i] = c.length
	}
	return out
}

func countsOf(classes []lengthClass) []int {
	out := make([]int, len(classes))
	for i, c := range classes {
		out[i] = c.count
	}
	return out
}

package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rod remnant left over after cutting.
type Offcut struct {
	ID           string  `json:"id"`
	RodIndex     int     `json:"rod_index"`     // Index of the source rod in the plan
	SourceLength float64 `json:"source_length"` // Length of the stock rod it came from
	Length       float64 `json:"length"`        // Usable length
}

// ToRodSpec converts an offcut into a leftover rod for reuse in future jobs.
func (o Offcut) ToRodSpec() RodSpec {
	return NewRodSpec("Offcut", o.Length, 1)
}

// MinOffcutLength is the minimum length for a remnant to be considered a
// reusable offcut. Shorter remnants are scrap.
const MinOffcutLength = 50.0

// DetectOffcuts returns the remnants of the plan that are at least minLength
// long, longest first. A non-positive minLength falls back to MinOffcutLength.
func DetectOffcuts(plan CuttingPlan, minLength float64) []Offcut {
	if minLength <= 0 {
		minLength = MinOffcutLength
	}

	var offcuts []Offcut
	for i, u := range plan.Plan {
		if u.OffcutWaste+DefaultTolerance < minLength {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:           uuid.New().String()[:8],
			RodIndex:     i,
			SourceLength: u.StockRodLength,
			Length:       u.OffcutWaste,
		})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})
	return offcuts
}

// TotalOffcutLength returns the summed length of all offcuts.
func TotalOffcutLength(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Length
	}
	return total
}

// GroupOffcuts merges offcuts of equal length into leftover rod specs.
func GroupOffcuts(offcuts []Offcut) []RodSpec {
	var specs []RodSpec
	for _, o := range offcuts {
		merged := false
		for i := range specs {
			if SameLength(specs[i].Length, o.Length, DefaultTolerance) {
				specs[i].Quantity++
				merged = true
				break
			}
		}
		if !merged {
			specs = append(specs, o.ToRodSpec())
		}
	}
	return specs
}

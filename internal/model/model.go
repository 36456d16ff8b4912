package model

import (
	"math"

	"github.com/google/uuid"
)

// DefaultTolerance is the relative tolerance used to compare lengths.
const DefaultTolerance = 1e-6

// SameLength reports whether two lengths fall into the same length class.
// The tolerance is relative to the larger magnitude, with a floor of 1 so that
// tiny lengths are compared absolutely.
func SameLength(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// RodSpec represents a length/quantity pair: either available stock or
// required cut pieces before expansion.
type RodSpec struct {
	ID       string  `json:"id,omitempty"`
	Label    string  `json:"label,omitempty"`
	Length   float64 `json:"length"`
	Quantity int     `json:"quantity"`
}

func NewRodSpec(label string, length float64, qty int) RodSpec {
	return RodSpec{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Quantity: qty,
	}
}

// Valid reports whether the spec has a positive finite length and a positive quantity.
func (r RodSpec) Valid() bool {
	return r.Length > 0 && !math.IsInf(r.Length, 0) && r.Quantity > 0
}

// TotalLength returns length * quantity.
func (r RodSpec) TotalLength() float64 {
	return r.Length * float64(r.Quantity)
}

// CutPiece is one piece cut from a stock rod.
type CutPiece struct {
	Length float64 `json:"length"`
}

// StockRodUsage describes one physical stock rod and the pieces cut from it.
// StockRodLength == TotalCutsLength + KerfWaste + OffcutWaste within tolerance.
type StockRodUsage struct {
	StockRodLength  float64    `json:"stockRodLength"`
	Cuts            []CutPiece `json:"cuts"`
	TotalCutsLength float64    `json:"totalCutsLength"`
	KerfWaste       float64    `json:"kerfWaste"`
	OffcutWaste     float64    `json:"offcutWaste"`
}

// Waste returns kerf plus offcut waste for the rod.
func (u StockRodUsage) Waste() float64 {
	return u.KerfWaste + u.OffcutWaste
}

// Efficiency returns the share of the rod that ended up in cut pieces, in percent.
func (u StockRodUsage) Efficiency() float64 {
	if u.StockRodLength == 0 {
		return 0
	}
	return (u.TotalCutsLength / u.StockRodLength) * 100.0
}

// UnfulfilledCut is demand that no remaining stock could produce.
type UnfulfilledCut struct {
	Length   float64 `json:"length"`
	Quantity int     `json:"quantity"`
}

// Summary aggregates a cutting plan.
type Summary struct {
	TotalStockUsedLength float64          `json:"totalStockUsedLength"`
	TotalCutPiecesLength float64          `json:"totalCutPiecesLength"`
	TotalKerfWaste       float64          `json:"totalKerfWaste"`
	TotalOffcutWaste     float64          `json:"totalOffcutWaste"`
	TotalWaste           float64          `json:"totalWaste"`
	WastePercentage      float64          `json:"wastePercentage"`
	UnfulfilledCuts      []UnfulfilledCut `json:"unfulfilledCuts"`
}

// UnfulfilledQuantity returns the total number of pieces that could not be cut.
func (s Summary) UnfulfilledQuantity() int {
	total := 0
	for _, u := range s.UnfulfilledCuts {
		total += u.Quantity
	}
	return total
}

// CuttingPlan is the full result of one optimization run.
type CuttingPlan struct {
	Plan    []StockRodUsage `json:"plan"`
	Summary Summary         `json:"summary"`
}

// RodsUsed returns the number of stock rods consumed by the plan.
func (p CuttingPlan) RodsUsed() int {
	return len(p.Plan)
}

// PiecesCut returns the number of pieces produced across all rods.
func (p CuttingPlan) PiecesCut() int {
	total := 0
	for _, u := range p.Plan {
		total += len(u.Cuts)
	}
	return total
}

// FulfilledQuantity counts the pieces in the plan whose length matches the given length.
func (p CuttingPlan) FulfilledQuantity(length float64) int {
	total := 0
	for _, u := range p.Plan {
		for _, c := range u.Cuts {
			if SameLength(c.Length, length, DefaultTolerance) {
				total++
			}
		}
	}
	return total
}

// StockUsage returns how many rods of each stock length the plan consumed,
// keyed by the first matching length seen.
func (p CuttingPlan) StockUsage() []RodSpec {
	var out []RodSpec
	for _, u := range p.Plan {
		found := false
		for i := range out {
			if SameLength(out[i].Length, u.StockRodLength, DefaultTolerance) {
				out[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			out = append(out, RodSpec{Length: u.StockRodLength, Quantity: 1})
		}
	}
	return out
}

// PlanRequest is the input contract of the optimizer.
type PlanRequest struct {
	BladeThickness float64   `json:"bladeThickness"`
	StockRods      []RodSpec `json:"stockRods"`
	LeftoverRods   []RodSpec `json:"leftoverRods,omitempty"`
	RequiredCuts   []RodSpec `json:"requiredCuts"`
}

// CutSettings holds the kerf and the search parameters of the optimizer.
type CutSettings struct {
	KerfWidth          float64 `json:"kerf_width"`           // Blade thickness in job units
	Tolerance          float64 `json:"tolerance"`            // Relative length tolerance
	SearchBudget       int     `json:"search_budget"`        // Max search nodes per stock length
	MinEfficiencyRatio float64 `json:"min_efficiency_ratio"` // Keep patterns within this ratio of the best
	MaxCandidates      int     `json:"max_candidates"`       // Max retained patterns per stock length
	Parallel           bool    `json:"parallel"`             // Generate patterns per stock length concurrently
}

func DefaultSettings() CutSettings {
	return CutSettings{
		KerfWidth:          0.5,
		Tolerance:          DefaultTolerance,
		SearchBudget:       20000,
		MinEfficiencyRatio: 0.9,
		MaxCandidates:      48,
		Parallel:           true,
	}
}

// Job ties a cutting job together for save/load.
type Job struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Unit      string       `json:"unit"`
	Settings  CutSettings  `json:"settings"`
	Stocks    []RodSpec    `json:"stocks"`
	Leftovers []RodSpec    `json:"leftovers"`
	Cuts      []RodSpec    `json:"cuts"`
	Result    *CuttingPlan `json:"result,omitempty"`
}

// NewJob returns the job a workshop starts from: one standard stock length
// and one required cut, matching the application defaults.
func NewJob() Job {
	return Job{
		ID:        uuid.New().String()[:8],
		Name:      "Untitled",
		Unit:      "cm",
		Settings:  DefaultSettings(),
		Stocks:    []RodSpec{NewRodSpec("Standard", 600, 10)},
		Leftovers: []RodSpec{},
		Cuts:      []RodSpec{NewRodSpec("", 55.5, 50)},
	}
}

// Request builds the optimizer input for this job.
func (j Job) Request() PlanRequest {
	return PlanRequest{
		BladeThickness: j.Settings.KerfWidth,
		StockRods:      j.Stocks,
		LeftoverRods:   j.Leftovers,
		RequiredCuts:   j.Cuts,
	}
}

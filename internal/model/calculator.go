package model

import "math"

// PurchaseEstimate holds the results of a rod purchasing calculation.
type PurchaseEstimate struct {
	TotalCutLength  float64   `json:"total_cut_length"`   // Sum of all piece lengths
	TotalWithKerf   float64   `json:"total_with_kerf"`    // Piece lengths plus one kerf per piece
	RodLength       float64   `json:"rod_length"`         // Length of one stock rod
	PiecesCount     int       `json:"pieces_count"`       // Pieces that fit a rod at all
	RodsNeededExact float64   `json:"rods_needed_exact"`  // Exact fractional number of rods
	RodsNeededMin   int       `json:"rods_needed_min"`    // Ceiling of the exact value
	RodsWithWaste   int       `json:"rods_with_waste"`    // Recommended rods including waste factor
	WastePercent    float64   `json:"waste_percent"`      // Waste factor applied (e.g., 10 for 10%)
	KerfWidth       float64   `json:"kerf_width"`         // Kerf width used in calculation
	Oversize        []RodSpec `json:"oversize,omitempty"` // Pieces longer than the rod
}

// CalculatePurchaseEstimate computes how many rods of rodLength to buy for a cut list.
// It is a lower-bound estimate: each piece is charged its length plus one kerf,
// and the waste percentage is added on top. Pieces longer than the rod are
// reported in Oversize and excluded from the totals.
func CalculatePurchaseEstimate(cuts []RodSpec, rodLength, kerfWidth, wastePercent float64) PurchaseEstimate {
	est := PurchaseEstimate{
		RodLength:    rodLength,
		WastePercent: wastePercent,
		KerfWidth:    kerfWidth,
	}

	for _, c := range cuts {
		if !c.Valid() {
			continue
		}
		if rodLength > 0 && c.Length > rodLength+DefaultTolerance*math.Max(1, rodLength) {
			est.Oversize = append(est.Oversize, RodSpec{Length: c.Length, Quantity: c.Quantity})
			continue
		}
		est.PiecesCount += c.Quantity
		est.TotalCutLength += c.TotalLength()
		est.TotalWithKerf += (c.Length + kerfWidth) * float64(c.Quantity)
	}

	if rodLength <= 0 {
		return est
	}

	est.RodsNeededExact = est.TotalWithKerf / rodLength
	est.RodsNeededMin = int(math.Ceil(est.RodsNeededExact - DefaultTolerance))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.RodsWithWaste = int(math.Ceil(est.RodsNeededExact*wasteFactor - DefaultTolerance))
	if est.RodsWithWaste < est.RodsNeededMin {
		est.RodsWithWaste = est.RodsNeededMin
	}
	return est
}

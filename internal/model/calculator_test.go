package model

import (
	"math"
	"testing"
)

func TestCalculatePurchaseEstimateBasic(t *testing.T) {
	cuts := []RodSpec{{Length: 55.5, Quantity: 50}}
	est := CalculatePurchaseEstimate(cuts, 600, 0.5, 10)

	if math.Abs(est.TotalCutLength-2775) > 1e-9 {
		t.Errorf("expected total cut length 2775, got %.2f", est.TotalCutLength)
	}
	if math.Abs(est.TotalWithKerf-2800) > 1e-9 {
		t.Errorf("expected total with kerf 2800, got %.2f", est.TotalWithKerf)
	}
	if est.PiecesCount != 50 {
		t.Errorf("expected 50 pieces, got %d", est.PiecesCount)
	}
	if est.RodsNeededMin != 5 {
		t.Errorf("expected 5 rods minimum, got %d", est.RodsNeededMin)
	}
	if est.RodsWithWaste != 6 {
		t.Errorf("expected 6 rods with waste, got %d", est.RodsWithWaste)
	}
}

func TestCalculatePurchaseEstimateZeroRodLength(t *testing.T) {
	est := CalculatePurchaseEstimate([]RodSpec{{Length: 100, Quantity: 1}}, 0, 0.5, 10)
	if est.RodsNeededMin != 0 {
		t.Errorf("expected 0 rods for zero rod length, got %d", est.RodsNeededMin)
	}
	if est.TotalCutLength <= 0 {
		t.Error("expected positive total cut length even with zero rod length")
	}
}

func TestCalculatePurchaseEstimateOversize(t *testing.T) {
	cuts := []RodSpec{
		{Length: 700, Quantity: 2},
		{Length: 100, Quantity: 3},
		{Length: 0, Quantity: 3},
	}
	est := CalculatePurchaseEstimate(cuts, 600, 1, 0)

	if len(est.Oversize) != 1 || est.Oversize[0].Quantity != 2 {
		t.Errorf("expected one oversize entry of 2, got %+v", est.Oversize)
	}
	if est.PiecesCount != 3 {
		t.Errorf("expected 3 pieces, got %d", est.PiecesCount)
	}
	if est.RodsNeededMin != 1 || est.RodsWithWaste != 1 {
		t.Errorf("expected 1 rod, got min=%d waste=%d", est.RodsNeededMin, est.RodsWithWaste)
	}
}

func TestCalculatePurchaseEstimateExactMultiple(t *testing.T) {
	// 4 x (149.5 + 0.5) == 600 exactly, so one rod suffices.
	est := CalculatePurchaseEstimate([]RodSpec{{Length: 149.5, Quantity: 4}}, 600, 0.5, 0)
	if est.RodsNeededMin != 1 {
		t.Errorf("expected 1 rod, got %d", est.RodsNeededMin)
	}
}

package model

import (
	"testing"
)

func samplePlan() CuttingPlan {
	return CuttingPlan{
		Plan: []StockRodUsage{
			{StockRodLength: 600, TotalCutsLength: 555, KerfWaste: 5, OffcutWaste: 40},
			{StockRodLength: 600, TotalCutsLength: 400, KerfWaste: 2, OffcutWaste: 198},
			{StockRodLength: 600, TotalCutsLength: 500, KerfWaste: 2, OffcutWaste: 98},
			{StockRodLength: 300, TotalCutsLength: 100, KerfWaste: 2, OffcutWaste: 198},
		},
	}
}

func TestDetectOffcutsFiltersAndSorts(t *testing.T) {
	offcuts := DetectOffcuts(samplePlan(), 60)
	if len(offcuts) != 3 {
		t.Fatalf("expected 3 offcuts, got %d", len(offcuts))
	}
	if offcuts[0].Length != 198 || offcuts[0].RodIndex != 1 {
		t.Errorf("expected longest offcut from rod 1 first, got %+v", offcuts[0])
	}
	if offcuts[1].RodIndex != 3 || offcuts[1].SourceLength != 300 {
		t.Errorf("expected equal-length offcuts to keep plan order, got %+v", offcuts[1])
	}
	if offcuts[2].Length != 98 {
		t.Errorf("expected 98 last, got %.1f", offcuts[2].Length)
	}
}

func TestDetectOffcutsDefaultMinimum(t *testing.T) {
	offcuts := DetectOffcuts(samplePlan(), 0)
	if len(offcuts) != 3 {
		t.Errorf("expected 3 offcuts at the default minimum of %.0f, got %d", MinOffcutLength, len(offcuts))
	}
	if len(DetectOffcuts(CuttingPlan{}, 10)) != 0 {
		t.Error("expected no offcuts for an empty plan")
	}
}

func TestGroupOffcuts(t *testing.T) {
	offcuts := DetectOffcuts(samplePlan(), 60)
	specs := GroupOffcuts(offcuts)
	if len(specs) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(specs))
	}
	if specs[0].Length != 198 || specs[0].Quantity != 2 {
		t.Errorf("unexpected first group %+v", specs[0])
	}
	if specs[0].Label != "Offcut" {
		t.Errorf("expected label Offcut, got %q", specs[0].Label)
	}
	if TotalOffcutLength(offcuts) != 494 {
		t.Errorf("expected total 494, got %.1f", TotalOffcutLength(offcuts))
	}
}

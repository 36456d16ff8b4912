package export

import (
	"strings"
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
)

func TestFormatLength(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{55.5, "", "55.5"},
		{600, "cm", "600 cm"},
		{19.999, "mm", "20 mm"},
		{0.125, "", "0.13"},
	}
	for _, tt := range tests {
		if got := FormatLength(tt.v, tt.unit); got != tt.want {
			t.Errorf("FormatLength(%v, %q) = %q, want %q", tt.v, tt.unit, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(7.5); got != "7.50%" {
		t.Errorf("expected 7.50%%, got %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("expected 0.00%%, got %q", got)
	}
}

func TestDescribeCuts(t *testing.T) {
	cuts := []model.CutPiece{{Length: 200}, {Length: 200}, {Length: 55.5}}
	if got := describeCuts(cuts); got != "200 x 2, 55.5 x 1" {
		t.Errorf("unexpected description %q", got)
	}
	if got := describeCuts(nil); got != "" {
		t.Errorf("expected empty description, got %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(buildTestPlan(), buildTestOptions())

	for _, want := range []string{
		"# Aluminum Rod Waste Reducer",
		"| Rods Used | 3 |",
		"| Blade Thickness | 0.5 cm |",
		"### Rod 1: Using Stock Rod 600 cm",
		"- Cuts: 55.5 x 10",
		"## Unfulfilled Cuts",
		"| 700 cm | 3 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(md, `<div class="bar">`) {
		t.Error("plain markdown should not contain rod bars")
	}
}

func TestRenderMarkdown_NoUnfulfilledSection(t *testing.T) {
	plan := buildTestPlan()
	plan.Summary.UnfulfilledCuts = []model.UnfulfilledCut{}

	md := RenderMarkdown(plan, DefaultOptions())
	if strings.Contains(md, "Unfulfilled") {
		t.Error("unfulfilled section rendered for a complete plan")
	}
	if strings.Contains(md, "Blade Thickness") {
		t.Error("blade thickness rendered without a kerf")
	}
}

func TestRenderHTML(t *testing.T) {
	doc, err := RenderHTML(buildTestPlan(), buildTestOptions())
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	for _, want := range []string{"dir='ltr'", "<table>", `<div class="bar">`, `class="waste"`} {
		if !strings.Contains(doc, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRenderHTML_ArabicIsRTL(t *testing.T) {
	opts := DefaultOptions()
	opts.Language = "ar"

	doc, err := RenderHTML(buildTestPlan(), opts)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if !strings.Contains(doc, "lang='ar' dir='rtl'") {
		t.Error("Arabic report is not right to left")
	}
	if !strings.Contains(doc, translations["ar"].Title) {
		t.Error("Arabic title missing")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{Language: "fr"}.withDefaults()
	if opts.Language != "en" || opts.Unit != "cm" || opts.Title == "" {
		t.Errorf("unexpected defaults %+v", opts)
	}
}

func TestRodBarHTML_SkipsZeroLengthRod(t *testing.T) {
	if got := rodBarHTML(model.StockRodUsage{}, translations["en"]); got != "" {
		t.Errorf("expected no bar, got %q", got)
	}
}

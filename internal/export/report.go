package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/piwi3910/RodCut/internal/model"
)

// Options carries the presentation settings of a report. They belong to the
// caller and never influence the plan itself.
type Options struct {
	Title    string  `json:"title"`
	Unit     string  `json:"unit"`     // "cm", "mm" or "in"
	Language string  `json:"language"` // "en" or "ar"
	Kerf     float64 `json:"kerf"`     // blade thickness the plan was computed with
}

// DefaultOptions returns English options in centimetres.
func DefaultOptions() Options {
	return Options{Unit: "cm", Language: "en"}
}

func (o Options) withDefaults() Options {
	if o.Unit == "" {
		o.Unit = "cm"
	}
	if _, ok := translations[o.Language]; !ok {
		o.Language = "en"
	}
	if o.Title == "" {
		o.Title = translations[o.Language].Title
	}
	return o
}

// phrases is the report vocabulary of one language.
type phrases struct {
	Dir                    string
	Title                  string
	Subtitle               string
	ResultsTitle           string
	TotalWaste             string
	WastePercentage        string
	BladeWaste             string
	OffcutWaste            string
	BladeThickness         string
	RodsUsed               string
	PiecesCut              string
	StockUsed              string
	CutLength              string
	UnfulfilledCuts        string
	UnfulfilledCutsMessage string
	UsingStockRod          string
	WasteLabel             string
	Rod                    string
	Cuts                   string
	Length                 string
	Quantity               string
	Efficiency             string
}

var translations = map[string]phrases{
	"en": {
		Dir:                    "ltr",
		Title:                  "Aluminum Rod Waste Reducer",
		Subtitle:               "Optimize your cuts, minimize your waste.",
		ResultsTitle:           "Cutting Plan & Summary",
		TotalWaste:             "Total Waste",
		WastePercentage:        "Waste %",
		BladeWaste:             "Blade Waste",
		OffcutWaste:            "Offcut Waste",
		BladeThickness:         "Blade Thickness",
		RodsUsed:               "Rods Used",
		PiecesCut:              "Pieces Cut",
		StockUsed:              "Stock Used",
		CutLength:              "Cut Length",
		UnfulfilledCuts:        "Unfulfilled Cuts",
		UnfulfilledCutsMessage: "The following required pieces could not be cut from the available stock:",
		UsingStockRod:          "Using Stock Rod",
		WasteLabel:             "Waste",
		Rod:                    "Rod",
		Cuts:                   "Cuts",
		Length:                 "Length",
		Quantity:               "Quantity",
		Efficiency:             "Efficiency",
	},
	"ar": {
		Dir:                    "rtl",
		Title:                  "محسن تقليل الفاقد في قضبان الألومنيوم",
		Subtitle:               "حسّن عمليات القطع، وقلل من الفاقد.",
		ResultsTitle:           "خطة القطع والملخص",
		TotalWaste:             "إجمالي الفاقد",
		WastePercentage:        "نسبة الفاقد %",
		BladeWaste:             "فاقد الشفرة",
		OffcutWaste:            "فاقد القطع النهائية",
		BladeThickness:         "سماكة شفرة المنشار",
		RodsUsed:               "القضبان المستخدمة",
		PiecesCut:              "القطع المنفذة",
		StockUsed:              "المخزون المستخدم",
		CutLength:              "طول القطع",
		UnfulfilledCuts:        "القطع التي لم تكتمل",
		UnfulfilledCutsMessage: "القطع المطلوبة التالية لا يمكن قصها من المخزون المتاح:",
		UsingStockRod:          "استخدام قضيب مخزون",
		WasteLabel:             "فاقد",
		Rod:                    "قضيب",
		Cuts:                   "القطع",
		Length:                 "الطول",
		Quantity:               "الكمية",
		Efficiency:             "الكفاءة",
	},
}

// Languages returns the supported report languages.
func Languages() []string {
	return []string{"en", "ar"}
}

// FormatLength rounds a length to two decimals and drops trailing zeros.
func FormatLength(v float64, unit string) string {
	s := decimal.NewFromFloat(v).Round(2).String()
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// FormatPercent renders a percentage with two fixed decimals.
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// cutGroup is a run of equal cut lengths on one rod.
type cutGroup struct {
	length float64
	count  int
}

// groupCuts collapses consecutive equal lengths. Cuts arrive longest first,
// so equal lengths are adjacent.
func groupCuts(cuts []model.CutPiece) []cutGroup {
	var groups []cutGroup
	for _, c := range cuts {
		n := len(groups)
		if n > 0 && model.SameLength(groups[n-1].length, c.Length, model.DefaultTolerance) {
			groups[n-1].count++
			continue
		}
		groups = append(groups, cutGroup{length: c.Length, count: 1})
	}
	return groups
}

func describeCuts(cuts []model.CutPiece) string {
	parts := make([]string, 0, len(cuts))
	for _, g := range groupCuts(cuts) {
		parts = append(parts, fmt.Sprintf("%s x %d", FormatLength(g.length, ""), g.count))
	}
	return strings.Join(parts, ", ")
}

// RenderMarkdown renders the plan as a Markdown report.
func RenderMarkdown(plan model.CuttingPlan, opts Options) string {
	return renderMarkdown(plan, opts.withDefaults(), false)
}

func renderMarkdown(plan model.CuttingPlan, opts Options, bars bool) string {
	tr := translations[opts.Language]
	u := opts.Unit
	s := plan.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n", opts.Title, tr.Subtitle)
	fmt.Fprintf(&b, "## %s\n\n", tr.ResultsTitle)

	b.WriteString("| | |\n|---|---|\n")
	rows := [][2]string{
		{tr.RodsUsed, fmt.Sprintf("%d", plan.RodsUsed())},
		{tr.PiecesCut, fmt.Sprintf("%d", plan.PiecesCut())},
		{tr.StockUsed, FormatLength(s.TotalStockUsedLength, u)},
		{tr.CutLength, FormatLength(s.TotalCutPiecesLength, u)},
		{tr.BladeWaste, FormatLength(s.TotalKerfWaste, u)},
		{tr.OffcutWaste, FormatLength(s.TotalOffcutWaste, u)},
		{tr.TotalWaste, FormatLength(s.TotalWaste, u)},
		{tr.WastePercentage, FormatPercent(s.WastePercentage)},
	}
	if opts.Kerf > 0 {
		rows = append(rows, [2]string{tr.BladeThickness, FormatLength(opts.Kerf, u)})
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r[0], r[1])
	}
	b.WriteString("\n")

	for i, rod := range plan.Plan {
		fmt.Fprintf(&b, "### %s %d: %s %s\n\n", tr.Rod, i+1, tr.UsingStockRod, FormatLength(rod.StockRodLength, u))
		if bars {
			b.WriteString(rodBarHTML(rod, tr))
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "- %s: %s\n", tr.Cuts, describeCuts(rod.Cuts))
		fmt.Fprintf(&b, "- %s: %s\n", tr.BladeWaste, FormatLength(rod.KerfWaste, u))
		fmt.Fprintf(&b, "- %s: %s\n", tr.OffcutWaste, FormatLength(rod.OffcutWaste, u))
		fmt.Fprintf(&b, "- %s: %s\n\n", tr.Efficiency, FormatPercent(rod.Efficiency()))
	}

	if len(s.UnfulfilledCuts) > 0 {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", tr.UnfulfilledCuts, tr.UnfulfilledCutsMessage)
		fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", tr.Length, tr.Quantity)
		for _, c := range s.UnfulfilledCuts {
			fmt.Fprintf(&b, "| %s | %d |\n", FormatLength(c.Length, u), c.Quantity)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// rodBarHTML draws a rod as a row of proportional segments: the pieces, then
// kerf and offcut together as one waste segment.
func rodBarHTML(rod model.StockRodUsage, tr phrases) string {
	if rod.StockRodLength <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="bar">`)
	for i, c := range rod.Cuts {
		pct := c.Length / rod.StockRodLength * 100
		fmt.Fprintf(&b, `<div class="piece c%d" style="width:%.4f%%">%s</div>`,
			i%len(partColors), pct, html.EscapeString(FormatLength(c.Length, "")))
	}
	if rod.Waste() > 0 {
		pct := rod.Waste() / rod.StockRodLength * 100
		fmt.Fprintf(&b, `<div class="waste" style="width:%.4f%%" title="%s">%s</div>`,
			pct, html.EscapeString(tr.WasteLabel), html.EscapeString(FormatLength(rod.Waste(), "")))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func reportCSS() string {
	var b strings.Builder
	b.WriteString("body{font-family:'Segoe UI',Tahoma,sans-serif;margin:1.5rem;color:#1f2937;} ")
	b.WriteString("h1{margin-bottom:0.2rem;} table{border-collapse:collapse;margin:0.5rem 0;} ")
	b.WriteString("th,td{border:1px solid #d1d5db;padding:0.3rem 0.6rem;} ")
	b.WriteString(".bar{display:flex;width:100%;height:28px;border:1px solid #374151;margin:0.4rem 0;} ")
	b.WriteString(".bar div{box-sizing:border-box;overflow:hidden;font-size:10px;line-height:28px;text-align:center;white-space:nowrap;} ")
	b.WriteString(".piece{border-inline-end:1px solid #111827;color:#fff;} ")
	b.WriteString(".waste{background:repeating-linear-gradient(45deg,#e5e7eb,#e5e7eb 4px,#d1d5db 4px,#d1d5db 8px);color:#6b7280;} ")
	for i, c := range partColors {
		fmt.Fprintf(&b, ".c%d{background:rgb(%d,%d,%d);} ", i, c.R, c.G, c.B)
	}
	b.WriteString("@media print{body{margin:0;} .bar{break-inside:avoid;}}")
	return b.String()
}

// RenderHTML renders the plan as a standalone HTML page with rod diagrams.
// Arabic reports are laid out right to left.
func RenderHTML(plan model.CuttingPlan, opts Options) (string, error) {
	opts = opts.withDefaults()
	tr := translations[opts.Language]

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	var content bytes.Buffer
	if err := md.Convert([]byte(renderMarkdown(plan, opts, true)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html lang='" + opts.Language + "' dir='" + tr.Dir + "'><head><meta charset='utf-8'>" +
		"<title>" + html.EscapeString(opts.Title) + "</title>" +
		"<style>" + reportCSS() + "</style></head><body>" +
		content.String() +
		"</body></html>", nil
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

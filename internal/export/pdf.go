// Package export renders cutting plans to PDF, QR labels, spreadsheets,
// DXF drawings and HTML reports.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RodCut/internal/model"
)

// ErrEmptyPlan is returned when a plan has no rods to render.
var ErrEmptyPlan = errors.New("no rods to export")

// partColor represents an RGB color for a cut piece.
type partColor struct {
	R, G, B int
}

// partColors is the palette cycled over the pieces of a rod.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rodRowHeight = 20.0
	barHeight    = 9.0
	rodsPerPage  = 8 // fits between drawAreaTop and the bottom margin
)

// ExportPDF writes the cutting plan as a PDF document: rod diagrams first,
// several rods per page, followed by a summary page.
//
// The core PDF fonts only cover Latin scripts, so the document is always in
// English. Use PrintPlan for Arabic reports.
func ExportPDF(path string, plan model.CuttingPlan, opts Options) error {
	pdf, err := buildPDF(plan, opts)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF writes the same document as ExportPDF to w.
func WritePDF(w io.Writer, plan model.CuttingPlan, opts Options) error {
	pdf, err := buildPDF(plan, opts)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(plan model.CuttingPlan, opts Options) (*fpdf.Fpdf, error) {
	if len(plan.Plan) == 0 {
		return nil, ErrEmptyPlan
	}
	opts = opts.withDefaults()
	opts.Language = "en"
	opts.Title = translations["en"].Title

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(opts.Title, true)

	// All bars share one scale so rods of different lengths compare visually.
	longest := 0.0
	for _, rod := range plan.Plan {
		longest = math.Max(longest, rod.StockRodLength)
	}

	pages := (len(plan.Plan) + rodsPerPage - 1) / rodsPerPage
	for p := 0; p < pages; p++ {
		pdf.AddPage()
		renderPageHeader(pdf, opts, p+1, pages)
		y := drawAreaTop
		for i := p * rodsPerPage; i < len(plan.Plan) && i < (p+1)*rodsPerPage; i++ {
			renderRod(pdf, plan.Plan[i], i+1, longest, y, opts.Kerf, opts.Unit)
			y += rodRowHeight
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, opts)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

func renderPageHeader(pdf *fpdf.Fpdf, opts Options, page, pages int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%d/%d)", opts.Title, page, pages)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")
}

// renderRod draws one stock rod as a horizontal bar at y.
func renderRod(pdf *fpdf.Fpdf, rod model.StockRodUsage, rodNum int, longest, y, kerf float64, unit string) {
	drawWidth := pageWidth - marginLeft - marginRight
	scale := drawWidth / longest

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	title := fmt.Sprintf("Rod %d: %s | %d cuts | kerf %s | offcut %s | %.1f%% used",
		rodNum, FormatLength(rod.StockRodLength, unit), len(rod.Cuts),
		FormatLength(rod.KerfWaste, unit), FormatLength(rod.OffcutWaste, unit), rod.Efficiency())
	pdf.CellFormat(drawWidth, 5, title, "", 0, "L", false, 0, "")

	barY := y + 6
	barW := rod.StockRodLength * scale

	// Each saw cut leaves a kerf-wide gap after its piece.
	gap := 0.0
	if rod.KerfWaste > 0 && len(rod.Cuts) > 0 {
		sawCuts := float64(len(rod.Cuts))
		if kerf > 0 {
			sawCuts = math.Max(1, math.Round(rod.KerfWaste/kerf))
		}
		gap = rod.KerfWaste / sawCuts
	}

	// Rod background shows kerf and offcut.
	pdf.SetFillColor(220, 220, 220)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(marginLeft, barY, barW, barHeight, "FD")

	x := marginLeft
	for i, c := range rod.Cuts {
		col := partColors[i%len(partColors)]
		w := c.Length * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, barY, w, barHeight, "FD")

		label := FormatLength(c.Length, "")
		pdf.SetFont("Helvetica", "", labelFontSize(w, barHeight))
		if lw := pdf.GetStringWidth(label); lw < w-1 {
			pdf.SetXY(x+(w-lw)/2, barY+(barHeight-4)/2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}

		x += w + gap*scale
	}

	if rod.OffcutWaste > 0 {
		offW := rod.OffcutWaste * scale
		offX := marginLeft + barW - offW
		drawHatchPattern(pdf, offX, barY, offW, barHeight)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark offcut waste.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.15)

	spacing := 2.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.CuttingPlan, opts Options) {
	tr := translations["en"]
	u := opts.Unit
	s := plan.Summary

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, tr.ResultsTitle, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
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
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{tr.BladeThickness, FormatLength(opts.Kerf, u)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	// Stock consumption per length.
	y += 4
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Stock Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{50, 30}
	headers := []string{tr.Length, tr.RodsUsed}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, st := range plan.StockUsage() {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(colWidths[0], 6, FormatLength(st.Length, u), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colWidths[1], 6, fmt.Sprintf("%d", st.Quantity), "1", 0, "C", true, 0, "")
		y += 6
	}

	if len(s.UnfulfilledCuts) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: "+tr.UnfulfilledCuts, "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(250, 5, tr.UnfulfilledCutsMessage, "", 0, "L", false, 0, "")
		y += 6

		for _, c := range s.UnfulfilledCuts {
			if y > pageHeight-marginBottom-8 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s (qty: %d)", FormatLength(c.Length, u), c.Quantity)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RodCut - Rod Cutting Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 8:
		return 8
	case minDim > 5:
		return 7
	default:
		return 6
	}
}

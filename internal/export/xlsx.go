package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RodCut/internal/model"
)

const (
	sheetPlan        = "Plan"
	sheetSummary     = "Summary"
	sheetUnfulfilled = "Unfulfilled"
)

// ExportXLSX writes the plan as an Excel workbook with one sheet for the
// rods, one for the summary and one for unfulfilled cuts.
func ExportXLSX(path string, plan model.CuttingPlan, opts Options) error {
	f, err := buildWorkbook(plan, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteXLSX writes the same workbook as ExportXLSX to w.
func WriteXLSX(w io.Writer, plan model.CuttingPlan, opts Options) error {
	f, err := buildWorkbook(plan, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(plan model.CuttingPlan, opts Options) (*excelize.File, error) {
	opts = opts.withDefaults()
	tr := translations[opts.Language]
	u := opts.Unit

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetPlan); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetSummary, sheetUnfulfilled} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}

	rows := [][]any{{
		tr.Rod,
		fmt.Sprintf("%s (%s)", tr.UsingStockRod, u),
		tr.Cuts,
		fmt.Sprintf("%s (%s)", tr.CutLength, u),
		fmt.Sprintf("%s (%s)", tr.BladeWaste, u),
		fmt.Sprintf("%s (%s)", tr.OffcutWaste, u),
		tr.Efficiency + " %",
	}}
	for i, rod := range plan.Plan {
		rows = append(rows, []any{
			i + 1,
			rod.StockRodLength,
			describeCuts(rod.Cuts),
			rod.TotalCutsLength,
			rod.KerfWaste,
			rod.OffcutWaste,
			roundTo(rod.Efficiency(), 2),
		})
	}
	if err := writeRows(f, sheetPlan, rows, bold); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetColWidth(sheetPlan, "A", "A", 8)
	_ = f.SetColWidth(sheetPlan, "B", "G", 20)
	_ = f.SetColWidth(sheetPlan, "C", "C", 40)

	s := plan.Summary
	summary := [][]any{
		{tr.ResultsTitle, ""},
		{tr.RodsUsed, plan.RodsUsed()},
		{tr.PiecesCut, plan.PiecesCut()},
		{tr.StockUsed, s.TotalStockUsedLength},
		{tr.CutLength, s.TotalCutPiecesLength},
		{tr.BladeWaste, s.TotalKerfWaste},
		{tr.OffcutWaste, s.TotalOffcutWaste},
		{tr.TotalWaste, s.TotalWaste},
		{tr.WastePercentage, roundTo(s.WastePercentage, 2)},
	}
	if opts.Kerf > 0 {
		summary = append(summary, []any{tr.BladeThickness, opts.Kerf})
	}
	if err := writeRows(f, sheetSummary, summary, bold); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 28)

	unfulfilled := [][]any{{fmt.Sprintf("%s (%s)", tr.Length, u), tr.Quantity}}
	for _, c := range s.UnfulfilledCuts {
		unfulfilled = append(unfulfilled, []any{c.Length, c.Quantity})
	}
	if err := writeRows(f, sheetUnfulfilled, unfulfilled, bold); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// writeRows writes rows starting at A1 and bolds the first row.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 {
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("style %s header: %w", sheet, err)
		}
	}
	return nil
}

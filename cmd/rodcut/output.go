package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/model"
)

var (
	headerColor  = color.New(color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
	bestRowColor = color.New(color.FgGreen, color.Bold)
)

// printPlan writes a terminal summary of the plan.
func printPlan(w io.Writer, plan model.CuttingPlan, unit string) {
	s := plan.Summary
	headerColor.Fprintf(w, "Cutting plan: %d rods, %d pieces\n\n", plan.RodsUsed(), plan.PiecesCut())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROD\tSTOCK\tCUTS\tKERF\tOFFCUT\tEFFICIENCY")
	for i, rod := range plan.Plan {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			export.FormatLength(rod.StockRodLength, ""),
			describe(rod.Cuts),
			export.FormatLength(rod.KerfWaste, ""),
			export.FormatLength(rod.OffcutWaste, ""),
			export.FormatPercent(rod.Efficiency()))
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Stock used:   %s\n", export.FormatLength(s.TotalStockUsedLength, unit))
	fmt.Fprintf(w, "Cut length:   %s\n", export.FormatLength(s.TotalCutPiecesLength, unit))
	fmt.Fprintf(w, "Blade waste:  %s\n", export.FormatLength(s.TotalKerfWaste, unit))
	fmt.Fprintf(w, "Offcut waste: %s\n", export.FormatLength(s.TotalOffcutWaste, unit))
	wasteLine := fmt.Sprintf("Total waste:  %s (%s)\n", export.FormatLength(s.TotalWaste, unit), export.FormatPercent(s.WastePercentage))
	if s.WastePercentage <= 10 {
		okColor.Fprint(w, wasteLine)
	} else {
		warnColor.Fprint(w, wasteLine)
	}

	if len(s.UnfulfilledCuts) == 0 {
		okColor.Fprintln(w, "All required cuts fulfilled.")
		return
	}
	warnColor.Fprintln(w, "\nUnfulfilled cuts:")
	for _, c := range s.UnfulfilledCuts {
		warnColor.Fprintf(w, "  %s x %d\n", export.FormatLength(c.Length, unit), c.Quantity)
	}
}

// describe lists cuts as "LENGTH x N" runs.
func describe(cuts []model.CutPiece) string {
	var parts []string
	for i := 0; i < len(cuts); {
		j := i
		for j < len(cuts) && model.SameLength(cuts[j].Length, cuts[i].Length, model.DefaultTolerance) {
			j++
		}
		parts = append(parts, fmt.Sprintf("%s x %d", export.FormatLength(cuts[i].Length, ""), j-i))
		i = j
	}
	return strings.Join(parts, ", ")
}

// formatFor picks the report format from an explicit flag or the file extension.
func formatFor(path, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".htm":
		return "html"
	case ".markdown":
		return "md"
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

// writeReport writes the plan to path in the given format. "chrome" prints
// the HTML report to PDF, which is needed for Arabic.
func writeReport(ctx context.Context, path, format string, plan model.CuttingPlan, opts export.Options, chromePath string) error {
	switch format {
	case "pdf":
		return export.ExportPDF(path, plan, opts)
	case "chrome":
		pdf, err := export.PrintPlan(ctx, plan, opts, chromePath)
		if err != nil {
			return err
		}
		return os.WriteFile(path, pdf, 0644)
	case "labels":
		return export.ExportLabels(path, plan, opts)
	case "xlsx":
		return export.ExportXLSX(path, plan, opts)
	case "dxf":
		return export.ExportDXF(path, plan, opts)
	case "html":
		doc, err := export.RenderHTML(plan, opts)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(doc), 0644)
	case "md":
		return os.WriteFile(path, []byte(export.RenderMarkdown(plan, opts)), 0644)
	case "json":
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	default:
		return fmt.Errorf("unknown report format %q (pdf, chrome, labels, xlsx, dxf, html, md, json)", format)
	}
}

// reportOptions builds export options from the config and command flags.
func reportOptions(cfg model.AppConfig, unit, lang string, kerf float64) export.Options {
	opts := export.Options{Title: cfg.ReportTitle, Unit: cfg.Unit, Language: cfg.Language, Kerf: kerf}
	if unit != "" {
		opts.Unit = unit
	}
	if lang != "" {
		opts.Language = lang
	}
	return opts
}

package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/RodCut/internal/model"
)

// DXF layer names.
const (
	layerRods   = "RODS"
	layerCuts   = "CUTS"
	layerLabels = "LABELS"
)

// Rod drawing geometry in plan units.
const (
	dxfRodHeight  = 20.0
	dxfRodSpacing = 50.0
	dxfTextHeight = 6.0
)

// ExportDXF writes a saw layout drawing: one rectangle per rod stacked
// downwards, a line at each side of every saw cut and the piece lengths as
// text. Lengths keep the plan's units.
func ExportDXF(path string, plan model.CuttingPlan, opts Options) error {
	if len(plan.Plan) == 0 {
		return ErrEmptyPlan
	}
	opts = opts.withDefaults()

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(layerRods, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", layerRods, err)
	}
	if _, err := d.AddLayer(layerCuts, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", layerCuts, err)
	}
	if _, err := d.AddLayer(layerLabels, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", layerLabels, err)
	}

	for i, rod := range plan.Plan {
		y := -float64(i) * dxfRodSpacing
		if err := drawRodDXF(d, rod, i+1, y, opts); err != nil {
			return fmt.Errorf("draw rod %d: %w", i+1, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

func drawRodDXF(d *drawing.Drawing, rod model.StockRodUsage, rodNum int, y float64, opts Options) error {
	l := rod.StockRodLength
	h := dxfRodHeight

	if err := d.ChangeLayer(layerRods); err != nil {
		return err
	}
	outline := [][4]float64{
		{0, y, l, y},
		{l, y, l, y + h},
		{l, y + h, 0, y + h},
		{0, y + h, 0, y},
	}
	for _, s := range outline {
		if _, err := d.Line(s[0], s[1], 0, s[2], s[3], 0); err != nil {
			return err
		}
	}

	sawCuts := len(rod.Cuts)
	if opts.Kerf > 0 {
		sawCuts = int(math.Round(rod.KerfWaste / opts.Kerf))
	}
	gap := 0.0
	if sawCuts > 0 {
		gap = rod.KerfWaste / float64(sawCuts)
	}

	x := 0.0
	for i, c := range rod.Cuts {
		if err := d.ChangeLayer(layerLabels); err != nil {
			return err
		}
		if _, err := d.Text(FormatLength(c.Length, ""), x+c.Length/2, y+h/2, 0, dxfTextHeight); err != nil {
			return err
		}

		x += c.Length
		if i >= sawCuts {
			continue
		}
		if err := d.ChangeLayer(layerCuts); err != nil {
			return err
		}
		for _, cx := range []float64{x, x + gap} {
			if _, err := d.Line(cx, y, 0, cx, y+h, 0); err != nil {
				return err
			}
		}
		x += gap
	}

	if err := d.ChangeLayer(layerLabels); err != nil {
		return err
	}
	title := fmt.Sprintf("ROD %d: %s", rodNum, FormatLength(l, opts.Unit))
	_, err := d.Text(title, 0, y+h+2, 0, dxfTextHeight)
	return err
}

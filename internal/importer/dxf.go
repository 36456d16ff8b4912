package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RodCut/internal/model"
)

// DefaultDXFTolerance is the absolute difference below which two member
// lengths in a drawing count as the same cut.
const DefaultDXFTolerance = 0.01

// ImportDXF builds a cut list from a frame drawing: every LINE, every
// LWPOLYLINE segment and every ARC (by its arc length) is one member to cut.
// Members of equal length within tol are grouped, longest first.
func ImportDXF(path string, tol float64) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var members []float64
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			members = append(members, distance(e.Start[0], e.Start[1], e.End[0], e.End[1]))

		case *entity.LwPolyline:
			members = append(members, polylineSegments(e)...)

		case *entity.Arc:
			members = append(members, arcLength(e))

		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	var lengths []float64
	degenerate := 0
	for _, m := range members {
		if m < tol {
			degenerate++
			continue
		}
		lengths = append(lengths, m)
	}
	if degenerate > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d zero-length members", degenerate))
	}

	if len(lengths) == 0 {
		result.Errors = append(result.Errors, "No members found in DXF file")
		return result
	}

	for i, g := range groupLengths(lengths, tol) {
		label := fmt.Sprintf("DXF member %d", i+1)
		result.Rods = append(result.Rods, model.NewRodSpec(label, g.length, g.count))
	}
	return result
}

// polylineSegments returns the straight segment lengths of a polyline,
// including the closing segment of a closed polyline. Bulged segments are
// measured along their arc.
func polylineSegments(lw *entity.LwPolyline) []float64 {
	n := len(lw.Vertices)
	if n < 2 {
		return nil
	}
	last := n - 1
	if lw.Closed {
		last = n
	}

	segs := make([]float64, 0, last)
	for i := 0; i < last; i++ {
		a := lw.Vertices[i]
		b := lw.Vertices[(i+1)%n]
		chord := distance(a[0], a[1], b[0], b[1])

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		segs = append(segs, bulgeLength(chord, bulge))
	}
	return segs
}

// bulgeLength converts a chord and a DXF bulge factor (tangent of a quarter
// of the included angle) into the arc length.
func bulgeLength(chord, bulge float64) float64 {
	if math.Abs(bulge) < 1e-9 || chord < 1e-9 {
		return chord
	}
	theta := 4 * math.Atan(math.Abs(bulge))
	radius := chord / (2 * math.Sin(theta/2))
	return radius * theta
}

// arcLength measures an ARC entity counter-clockwise from its start angle to
// its end angle.
func arcLength(a *entity.Arc) float64 {
	sweep := a.Angle[1] - a.Angle[0]
	for sweep <= 0 {
		sweep += 360
	}
	return a.Circle.Radius * sweep * math.Pi / 180
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

type lengthGroup struct {
	length float64
	count  int
}

// groupLengths sorts lengths longest first and merges runs that stay within
// tol of the run's first length. Lengths are rounded to two decimals.
func groupLengths(lengths []float64, tol float64) []lengthGroup {
	sorted := append([]float64(nil), lengths...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var groups []lengthGroup
	for _, l := range sorted {
		n := len(groups)
		if n > 0 && groups[n-1].length-l <= tol {
			groups[n-1].count++
			continue
		}
		groups = append(groups, lengthGroup{length: l, count: 1})
	}
	for i := range groups {
		groups[i].length = math.Round(groups[i].length*100) / 100
	}
	return groups
}

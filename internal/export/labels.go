package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RodCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	Length      float64 `json:"length"`
	Unit        string  `json:"unit"`
	RodIndex    int     `json:"rod"`
	StockLength float64 `json:"stock_length"`
	Position    int     `json:"position"` // 1-based order of the piece on its rod
	Offset      float64 `json:"offset"`   // distance from the rod start to the piece start
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per cut piece, so each
// piece can be marked as it comes off the saw. Labels follow the cutting
// order rod by rod.
func ExportLabels(path string, plan model.CuttingPlan, opts Options) error {
	labels := CollectLabelInfos(plan, opts)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for: %w", ErrEmptyPlan)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for rod %d piece %d: %w", label.RodIndex, label.Position, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.RodIndex, info.Position)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Piece length, large
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 6, FormatLength(info.Length, info.Unit), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+7)
	rodInfo := fmt.Sprintf("Rod %d (%s), piece %d", info.RodIndex, FormatLength(info.StockLength, info.Unit), info.Position)
	pdf.CellFormat(textW, 3.5, rodInfo, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+11)
	pdf.CellFormat(textW, 3, "Starts at "+FormatLength(info.Offset, info.Unit), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos lists one label per cut piece in cutting order. Offsets
// advance by one kerf per piece when opts.Kerf is set.
func CollectLabelInfos(plan model.CuttingPlan, opts Options) []LabelInfo {
	opts = opts.withDefaults()
	var labels []LabelInfo
	for rodIdx, rod := range plan.Plan {
		offset := 0.0
		for pos, c := range rod.Cuts {
			labels = append(labels, LabelInfo{
				Length:      c.Length,
				Unit:        opts.Unit,
				RodIndex:    rodIdx + 1,
				StockLength: rod.StockRodLength,
				Position:    pos + 1,
				Offset:      offset,
			})
			offset += c.Length + opts.Kerf
		}
	}
	return labels
}

package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/facer/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each job label's QR code.
type LabelInfo struct {
	Name         string         `json:"name"`
	Material     string         `json:"material"`
	ToolDiameter float64        `json:"tool_in"`
	Flutes       int            `json:"flutes"`
	AxialDepth   float64        `json:"axial_in"`
	RadialDepth  float64        `json:"radial_in"`
	FeedRate     float64        `json:"feed_ipm"`
	Boundary     model.Boundary `json:"boundary"`
	ZTop         float64        `json:"z_top"`
	ZBottom      float64        `json:"z_bottom"`
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

// NewLabelInfo extracts the label data of a job.
func NewLabelInfo(job model.Job) LabelInfo {
	p := job.Parameters
	top, bottom := p.ZRange()
	return LabelInfo{
		Name:         job.Name,
		Material:     job.Material,
		ToolDiameter: p.ToolDiameter,
		Flutes:       p.Flutes,
		AxialDepth:   p.AxialDepth,
		RadialDepth:  p.RadialDepth,
		FeedRate:     p.FeedRate,
		Boundary:     p.Boundary.Normalized(),
		ZTop:         top,
		ZBottom:      bottom,
	}
}

// jobQRCode encodes the job's label data as a PNG QR code.
func jobQRCode(job model.Job, size int) ([]byte, error) {
	qrData, err := json.Marshal(NewLabelInfo(job))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(qrData), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// ExportLabels generates a PDF of QR-coded labels, one per job, to tag
// fixtures or workpieces. Labels are laid out on a standard label sheet
// format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, jobs []model.Job) error {
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, job := range jobs {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, job); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", job.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, job model.Job) error {
	info := NewLabelInfo(job)

	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrPNG, err := jobQRCode(job, 256)
	if err != nil {
		return err
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_label_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Job name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.Name, textW), "", 1, "L", false, 0, "")

	// Material
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, truncate(pdf, info.Material, textW), "", 1, "L", false, 0, "")

	// Area and depth
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	b := info.Boundary
	pdf.CellFormat(textW, 3, fmt.Sprintf("%.3f x %.3f in, Z %g > %g", b.Width(), b.Height(), info.ZTop, info.ZBottom),
		"", 1, "L", false, 0, "")

	// Tool
	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%g in %dFL @ %g in/min", info.ToolDiameter, info.Flutes, info.FeedRate),
		"", 0, "L", false, 0, "")

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// truncate shortens s with an ellipsis until it fits in w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// Package export writes facing jobs to shop documents: a PDF setup sheet,
// QR-coded job labels, a feeds and speeds workbook and a toolpath DXF.
package export

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/model"
)

// SetupSheet is everything printed on a job's setup sheet.
type SetupSheet struct {
	Job         model.Job
	Derived     model.DerivedResult
	Program     gcode.Program
	GeneratedAt time.Time
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	sheetQRSize  = 35.0
	previewTop   = 165.0
)

// ExportSetupSheet generates a one-page PDF with the job parameters, the
// computed cutting data, program statistics, a raster preview and a QR code
// carrying the job.
func ExportSetupSheet(path string, sheet SetupSheet) error {
	if len(sheet.Program.Motions) == 0 {
		return fmt.Errorf("no toolpath to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	if err := renderSetupSheet(pdf, sheet); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

func renderSetupSheet(pdf *fpdf.Fpdf, sheet SetupSheet) error {
	job := sheet.Job
	p := job.Parameters

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-sheetQRSize, headerHeight,
		fmt.Sprintf("Facing Setup Sheet: %s", job.Name), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	generated := sheet.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(100, 5, fmt.Sprintf("Material: %s | Profile: %s | %s",
		job.Material, job.Profile, generated.Format("2006-01-02 15:04")), "", 0, "L", false, 0, "")

	if err := drawJobQR(pdf, job, pageWidth-marginRight-sheetQRSize, marginTop, sheetQRSize); err != nil {
		return err
	}

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+sheetQRSize+3, pageWidth-marginRight, marginTop+sheetQRSize+3)

	y := marginTop + sheetQRSize + 8
	colW := (pageWidth - marginLeft - marginRight) / 2

	b := p.Boundary.Normalized()
	top, bottom := p.ZRange()
	y1 := drawTable(pdf, marginLeft, y, colW, "Cutting Parameters", [][2]string{
		{"Tool diameter", fmt.Sprintf("%g in", p.ToolDiameter)},
		{"Flutes", fmt.Sprintf("%d", p.Flutes)},
		{"Radial DOC", fmt.Sprintf("%g in", p.RadialDepth)},
		{"Axial DOC", axialLabel(p.AxialDepth)},
		{"Feed rate", fmt.Sprintf("%g in/min", p.FeedRate)},
		{"X range", fmt.Sprintf("%g .. %g", b.X1, b.X2)},
		{"Y range", fmt.Sprintf("%g .. %g", b.Y1, b.Y2)},
		{"Z top / bottom", fmt.Sprintf("%g / %g", top, bottom)},
		{"Safe Z", fmt.Sprintf("%g", p.SafeZ)},
		{"Row stepping", p.RowStep.String()},
	})

	var derived [][2]string
	for _, line := range sheet.Derived.Summary() {
		derived = append(derived, [2]string{line.Label, line.Value})
	}
	y2 := drawTable(pdf, marginLeft+colW, y, colW, "Feeds and Speeds", derived)

	stats := gcode.Analyze(sheet.Program.Moves())
	y3 := drawTable(pdf, marginLeft+colW, y2+4, colW, "Program", [][2]string{
		{"Z passes", fmt.Sprintf("%d", stats.Passes)},
		{"Rows", fmt.Sprintf("%d", stats.Rows)},
		{"Cut length", fmt.Sprintf("%.2f in", stats.CutLength)},
		{"Rapid length", fmt.Sprintf("%.2f in", stats.RapidLength)},
		{"Cut time", stats.CutTime.Round(time.Second).String()},
	})

	previewY := math.Max(previewTop, math.Max(y1, y3)+6)
	drawToolpathPreview(pdf, sheet.Program, b, marginLeft, previewY,
		pageWidth-marginLeft-marginRight, pageHeight-marginBottom-previewY)
	return nil
}

// drawTable renders a titled two-column table and returns the Y below it.
func drawTable(pdf *fpdf.Fpdf, x, y, w float64, title string, rows [][2]string) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 7, title, "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 8)
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(240, 240, 240)
		pdf.SetXY(x, y)
		pdf.CellFormat(w*0.55, 5, row[0], "", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(w*0.4, 5, row[1], "", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		y += 5
	}
	return y
}

// drawToolpathPreview plots the program's moves scaled into the given box,
// cuts solid and rapids dashed.
func drawToolpathPreview(pdf *fpdf.Fpdf, prog gcode.Program, b model.Boundary, x, y, w, h float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 7, "Toolpath (top view)", "", 0, "L", false, 0, "")
	y += 9
	h -= 9

	moves := prog.Moves()
	minX, maxX := math.Min(b.X1, b.X2), math.Max(b.X1, b.X2)
	minY, maxY := b.Y1, b.Y2
	for _, m := range moves {
		if m.Type == gcode.MoveFeed {
			minY = math.Min(minY, m.ToY)
			maxY = math.Max(maxY, m.ToY)
		}
	}
	spanX := math.Max(maxX-minX, 1e-6)
	spanY := math.Max(maxY-minY, 1e-6)
	scale := math.Min(w/spanX, h/spanY)
	offsetX := x + (w-spanX*scale)/2
	offsetY := y + (h-spanY*scale)/2

	// PDF Y grows downward; machine Y grows upward.
	px := func(v float64) float64 { return offsetX + (v-minX)*scale }
	py := func(v float64) float64 { return offsetY + (maxY-v)*scale }

	// Stock rectangle
	pdf.SetFillColor(225, 225, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(px(minX), py(b.Y2), (maxX-minX)*scale, (b.Y2-b.Y1)*scale, "FD")

	for _, m := range moves {
		if m.FromX == m.ToX && m.FromY == m.ToY {
			continue
		}
		switch m.Type {
		case gcode.MoveFeed:
			pdf.SetDashPattern([]float64{}, 0)
			pdf.SetDrawColor(33, 150, 243)
			pdf.SetLineWidth(0.4)
		default:
			pdf.SetDashPattern([]float64{1, 1}, 0)
			pdf.SetDrawColor(244, 67, 54)
			pdf.SetLineWidth(0.15)
		}
		pdf.Line(px(m.FromX), py(m.FromY), px(m.ToX), py(m.ToY))
	}
	pdf.SetDashPattern([]float64{}, 0)
}

// drawJobQR places a QR code encoding the job at (x, y).
func drawJobQR(pdf *fpdf.Fpdf, job model.Job, x, y, size float64) error {
	png, err := jobQRCode(job, 256)
	if err != nil {
		return err
	}
	imgName := fmt.Sprintf("qr_job_%s", job.Name)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, size, size, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func axialLabel(v float64) string {
	if preset, ok := model.AxialDepthPresetFor(v); ok {
		return fmt.Sprintf("%s in (%g)", preset.Label, v)
	}
	return fmt.Sprintf("%g in", v)
}

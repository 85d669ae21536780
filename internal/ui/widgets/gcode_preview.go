// Package widgets holds the custom fyne widgets of the facing UI.
package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/model"
)

// Toolpath colors for different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}   // Red for rapid moves
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230}  // Blue for cutting moves
	colorPlunge  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}   // Green for plunge
	colorRetract = color.NRGBA{R: 180, G: 180, B: 0, A: 180}   // Yellow for retract
	colorStock   = color.NRGBA{R: 205, G: 210, B: 218, A: 255} // Light grey for the faced area
	colorBorder  = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
)

const previewMargin = float32(12)

// ToolpathPreview renders a top view of a facing program over the
// rectangle being faced. Machine Y grows upward on screen.
type ToolpathPreview struct {
	widget.BaseWidget
	moves     []gcode.GCodeMove
	boundary  model.Boundary
	maxWidth  float32
	maxHeight float32
}

// NewToolpathPreview creates an empty preview widget.
func NewToolpathPreview(maxW, maxH float32) *ToolpathPreview {
	tp := &ToolpathPreview{maxWidth: maxW, maxHeight: maxH}
	tp.ExtendBaseWidget(tp)
	return tp
}

// SetProgram replaces the displayed toolpath.
func (tp *ToolpathPreview) SetProgram(prog gcode.Program, b model.Boundary) {
	tp.moves = prog.Moves()
	tp.boundary = b.Normalized()
	tp.Refresh()
}

// Clear removes the toolpath, leaving an empty canvas.
func (tp *ToolpathPreview) Clear() {
	tp.moves = nil
	tp.boundary = model.Boundary{}
	tp.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (tp *ToolpathPreview) CreateRenderer() fyne.WidgetRenderer {
	return newToolpathPreviewRenderer(tp)
}

// viewport maps machine XY into widget coordinates.
type viewport struct {
	minX, maxY float64
	scale      float32
}

func (v viewport) pos(x, y float64) fyne.Position {
	return fyne.NewPos(
		float32(x-v.minX)*v.scale+previewMargin,
		float32(v.maxY-y)*v.scale+previewMargin,
	)
}

// extent returns the XY box covering the boundary and every feed move.
func (tp *ToolpathPreview) extent() (minX, minY, maxX, maxY float64, ok bool) {
	b := tp.boundary
	minX, maxX = math.Min(b.X1, b.X2), math.Max(b.X1, b.X2)
	minY, maxY = b.Y1, b.Y2
	for _, m := range tp.moves {
		if m.Type != gcode.MoveFeed {
			continue
		}
		minY = math.Min(minY, m.ToY)
		maxY = math.Max(maxY, m.ToY)
	}
	return minX, minY, maxX, maxY, len(tp.moves) > 0 && (maxX > minX || maxY > minY)
}

func (tp *ToolpathPreview) viewport() (viewport, float32, float32, bool) {
	minX, minY, maxX, maxY, ok := tp.extent()
	if !ok {
		return viewport{}, 0, 0, false
	}
	spanX := float32(math.Max(maxX-minX, 1e-6))
	spanY := float32(math.Max(maxY-minY, 1e-6))
	scale := (tp.maxWidth - previewMargin*2) / spanX
	if s := (tp.maxHeight - previewMargin*2) / spanY; s < scale {
		scale = s
	}
	if scale <= 0 {
		scale = 1
	}
	return viewport{minX: minX, maxY: maxY, scale: scale}, spanX * scale, spanY * scale, true
}

type toolpathPreviewRenderer struct {
	tp      *ToolpathPreview
	objects []fyne.CanvasObject
}

func newToolpathPreviewRenderer(tp *ToolpathPreview) *toolpathPreviewRenderer {
	r := &toolpathPreviewRenderer{tp: tp}
	r.rebuild()
	return r
}

func (r *toolpathPreviewRenderer) rebuild() {
	r.objects = nil

	tp := r.tp
	vp, _, _, ok := tp.viewport()
	if !ok {
		return
	}

	// Faced area
	b := tp.boundary
	topLeft := vp.pos(math.Min(b.X1, b.X2), b.Y2)
	size := fyne.NewSize(float32(math.Abs(b.X2-b.X1))*vp.scale, float32(b.Y2-b.Y1)*vp.scale)

	bg := canvas.NewRectangle(colorStock)
	bg.Resize(size)
	bg.Move(topLeft)
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = colorBorder
	border.StrokeWidth = 2
	border.Resize(size)
	border.Move(topLeft)
	r.objects = append(r.objects, border)

	for _, m := range tp.moves {
		from := vp.pos(m.FromX, m.FromY)
		to := vp.pos(m.ToX, m.ToY)

		// Zero-length sweeps and Z-only moves are shown as markers or skipped
		xyDist := math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)

		switch m.Type {
		case gcode.MoveRapid:
			if xyDist < 1e-4 {
				continue
			}
			r.addLine(from, to, colorRapid, 1)
			r.drawDashedOverlay(from.X, from.Y, to.X, to.Y)

		case gcode.MoveFeed:
			if xyDist < 1e-4 {
				continue
			}
			r.addLine(from, to, colorFeed, 2)

		case gcode.MovePlunge:
			r.addMarker(from, colorPlunge, 4)

		case gcode.MoveRetract:
			if xyDist < 1e-4 {
				r.addMarker(from, colorRetract, 3)
			} else {
				r.addLine(from, to, colorRetract, 1)
			}
		}
	}
}

func (r *toolpathPreviewRenderer) addLine(from, to fyne.Position, col color.NRGBA, width float32) {
	line := canvas.NewLine(col)
	line.StrokeWidth = width
	line.Position1 = from
	line.Position2 = to
	r.objects = append(r.objects, line)
}

func (r *toolpathPreviewRenderer) addMarker(at fyne.Position, col color.NRGBA, size float32) {
	marker := canvas.NewCircle(col)
	marker.Resize(fyne.NewSize(size, size))
	marker.Move(fyne.NewPos(at.X-size/2, at.Y-size/2))
	r.objects = append(r.objects, marker)
}

// drawDashedOverlay adds background-colored gaps along a rapid move line.
func (r *toolpathPreviewRenderer) drawDashedOverlay(x1, y1, x2, y2 float32) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 8 {
		return
	}

	dashLen := float32(6)
	gapLen := float32(4)
	nx := dx / length
	ny := dy / length

	cursor := dashLen
	for cursor+gapLen < length {
		gap := canvas.NewLine(colorStock)
		gap.StrokeWidth = 2.5
		gap.Position1 = fyne.NewPos(x1+nx*cursor, y1+ny*cursor)
		gap.Position2 = fyne.NewPos(x1+nx*(cursor+gapLen), y1+ny*(cursor+gapLen))
		r.objects = append(r.objects, gap)

		cursor += dashLen + gapLen
	}
}

func (r *toolpathPreviewRenderer) Layout(size fyne.Size)        {}
func (r *toolpathPreviewRenderer) Refresh()                     { r.rebuild() }
func (r *toolpathPreviewRenderer) Destroy()                     {}
func (r *toolpathPreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *toolpathPreviewRenderer) MinSize() fyne.Size {
	_, w, h, ok := r.tp.viewport()
	if !ok {
		return fyne.NewSize(100, 100)
	}
	return fyne.NewSize(w+previewMargin*2, h+previewMargin*2)
}

package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/facer/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// BoundaryResult holds the facing rectangle read from a drawing.
type BoundaryResult struct {
	Boundary model.Boundary
	Entities int // geometry entities that contributed to the extents
	Errors   []string
	Warnings []string
}

// extents accumulates the bounding box of 2D points.
type extents struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func newExtents() extents {
	return extents{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
		empty: true,
	}
}

func (e *extents) add(x, y float64) {
	e.minX = math.Min(e.minX, x)
	e.minY = math.Min(e.minY, y)
	e.maxX = math.Max(e.maxX, x)
	e.maxY = math.Max(e.maxY, y)
	e.empty = false
}

// ImportBoundaryDXF reads a stock outline drawing and returns the rectangle
// enclosing its LINE, LWPOLYLINE, CIRCLE and ARC entities. Non-rectangular
// stock is faced over its bounding box.
func ImportBoundaryDXF(path string) BoundaryResult {
	result := BoundaryResult{}

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

	ext := newExtents()
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			for _, v := range e.Vertices {
				ext.add(v[0], v[1])
			}
		case *entity.Line:
			ext.add(e.Start[0], e.Start[1])
			ext.add(e.End[0], e.End[1])
		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			ext.add(cx-r, cy-r)
			ext.add(cx+r, cy+r)
		case *entity.Arc:
			for _, pt := range arcPoints(e, 32) {
				ext.add(pt[0], pt[1])
			}
		default:
			skipped++
			continue
		}
		result.Entities++
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	if ext.empty {
		result.Errors = append(result.Errors, "No supported geometry found in DXF file")
		return result
	}
	if ext.maxX-ext.minX < 1e-6 || ext.maxY-ext.minY < 1e-6 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Degenerate outline (%.4f x %.4f in)", ext.maxX-ext.minX, ext.maxY-ext.minY))
		return result
	}

	result.Boundary = model.Boundary{X1: ext.minX, Y1: ext.minY, X2: ext.maxX, Y2: ext.maxY}
	return result
}

// arcPoints samples a DXF ARC entity, whose angles are in degrees counter-clockwise.
func arcPoints(a *entity.Arc, numSegments int) [][2]float64 {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([][2]float64, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

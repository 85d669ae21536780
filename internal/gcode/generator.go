package gcode

import (
	"math"

	"github.com/piwi3910/facer/internal/model"
)

// Motion comments of a facing program.
const (
	CommentSafeZ   = "move to safeZ"
	CommentStartXY = "move to startXY"
	CommentStartZ  = "move to startZ"
	CommentSweep   = "sweep"
	CommentNext    = "move to next"
)

// levelEpsilon absorbs floating point drift when stepping Z and Y.
const levelEpsilon = 1e-9

// edge is the X side of the rectangle the next sweep ends on.
type edge int

const (
	edgeX2 edge = iota
	edgeX1
)

func (e edge) flip() edge {
	if e == edgeX2 {
		return edgeX1
	}
	return edgeX2
}

func (e edge) x(b model.Boundary) float64 {
	if e == edgeX1 {
		return b.X1
	}
	return b.X2
}

// facingPass holds what every Z pass shares.
type facingPass struct {
	bounds model.Boundary
	rows   []float64
	step   float64
	feed   float64
	safeZ  float64
}

// GenerateFacingProgram produces a zig-zag raster that faces the boundary
// rectangle from ZTop down to ZBottom. The sweep edge starts at X2 and keeps
// alternating across rows and passes, so each pass begins where the last one
// left the tool.
func GenerateFacingProgram(params model.CuttingParameters) (Program, error) {
	if err := params.Validate(); err != nil {
		return Program{}, err
	}
	policy, err := model.ParseStepPolicy(string(params.RowStep))
	if err != nil {
		return Program{}, err
	}

	b := params.Boundary.Normalized()
	top, bottom := params.ZRange()
	levels := ZLevels(top, bottom, params.AxialDepth)

	pass := facingPass{
		bounds: b,
		rows:   RowPositions(b.Y1, b.Y2, params.RadialDepth, policy),
		step:   params.RadialDepth,
		feed:   params.FeedRate,
		safeZ:  params.SafeZ,
	}

	prog := Program{Motions: make([]Motion, 0, len(levels)*(3+2*len(pass.rows))+1)}
	current := edgeX2
	for _, z := range levels {
		current = pass.write(&prog, z, current)
	}
	prog.Motions = append(prog.Motions, End())
	return prog, nil
}

// write appends one Z pass and returns the edge the next pass starts from.
func (f facingPass) write(prog *Program, z float64, current edge) edge {
	prog.Motions = append(prog.Motions,
		RapidZ(f.safeZ, CommentSafeZ),
		RapidXY(current.x(f.bounds), f.bounds.Y1, CommentStartXY),
		RapidZ(z, CommentStartZ),
	)
	for _, y := range f.rows {
		prog.Motions = append(prog.Motions,
			Linear(current.x(f.bounds), y, f.feed, CommentSweep),
			RapidY(y+f.step, CommentNext),
		)
		current = current.flip()
	}
	return current
}

// ZLevels returns the cutting depths from just below top down to bottom in
// steps of axial depth. The last level is clamped to bottom. A zero-height
// range yields a single level at bottom.
func ZLevels(top, bottom, step float64) []float64 {
	if top < bottom {
		top, bottom = bottom, top
	}
	n := int(math.Ceil((top-bottom)/step - levelEpsilon))
	if n < 1 {
		return []float64{bottom}
	}
	levels := make([]float64, n)
	for k := 1; k <= n; k++ {
		levels[k-1] = top - float64(k)*step
	}
	levels[n-1] = bottom
	return levels
}

// RowPositions returns the Y of every raster row between y1 and y2.
// Rows sit at y1 + i*step while they do not pass y2. With
// StepClampToBoundary a final row is added at y2 when the last one falls short.
func RowPositions(y1, y2, step float64, policy model.StepPolicy) []float64 {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var rows []float64
	for i := 0; ; i++ {
		y := y1 + float64(i)*step
		if y > y2+levelEpsilon {
			break
		}
		rows = append(rows, y)
	}
	if policy == model.StepClampToBoundary && y2-rows[len(rows)-1] > levelEpsilon {
		rows = append(rows, y2)
	}
	return rows
}

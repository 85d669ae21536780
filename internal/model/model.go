package model

import (
	"fmt"
	"math"
)

// Boundary is the rectangle to face, in inches.
type Boundary struct {
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
	X2 float64 `json:"x2" yaml:"x2"`
	Y2 float64 `json:"y2" yaml:"y2"`
}

// Normalized returns the boundary with Y1 <= Y2. X edges keep their order
// because the raster starts from X2.
func (b Boundary) Normalized() Boundary {
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

// Width returns the X extent.
func (b Boundary) Width() float64 {
	return math.Abs(b.X2 - b.X1)
}

// Height returns the Y extent.
func (b Boundary) Height() float64 {
	return math.Abs(b.Y2 - b.Y1)
}

// StepPolicy selects how the last raster row is placed.
type StepPolicy string

const (
	// StepStopBeforeOvershoot stops stepping once the next row would pass Y2.
	// A strip narrower than one step may remain at the far edge.
	StepStopBeforeOvershoot StepPolicy = "stop"
	// StepClampToBoundary adds a final row exactly at Y2 when the stepping falls short.
	StepClampToBoundary StepPolicy = "clamp"
)

// StepPolicies lists the accepted step policies.
var StepPolicies = []StepPolicy{StepStopBeforeOvershoot, StepClampToBoundary}

func (p StepPolicy) String() string {
	switch p {
	case StepClampToBoundary:
		return "Clamp to boundary"
	case StepStopBeforeOvershoot, "":
		return "Stop before overshoot"
	default:
		return string(p)
	}
}

// ParseStepPolicy converts a name into a StepPolicy. The empty string selects the default.
func ParseStepPolicy(s string) (StepPolicy, error) {
	switch StepPolicy(s) {
	case "", StepStopBeforeOvershoot:
		return StepStopBeforeOvershoot, nil
	case StepClampToBoundary:
		return StepClampToBoundary, nil
	}
	return "", fmt.Errorf("%w: %q", ErrStepPolicy, s)
}

// CuttingParameters describes one facing job. It is a plain value: build a
// new one for every computation instead of sharing a mutable instance.
type CuttingParameters struct {
	ToolDiameter float64    `json:"tool_diameter" yaml:"toolDiameter"` // inches
	Flutes       int        `json:"flutes" yaml:"flutes"`
	RadialDepth  float64    `json:"radial_depth" yaml:"radialDepth"` // XY step-over, inches
	AxialDepth   float64    `json:"axial_depth" yaml:"axialDepth"`   // Z step-down, inches
	FeedRate     float64    `json:"feed_rate" yaml:"feedRate"`       // in/min, 0 = use the computed feed
	Boundary     Boundary   `json:"boundary" yaml:"boundary"`
	ZTop         float64    `json:"z_top" yaml:"zTop"`
	ZBottom      float64    `json:"z_bottom" yaml:"zBottom"`
	SafeZ        float64    `json:"safe_z" yaml:"safeZ"`
	RowStep      StepPolicy `json:"row_step,omitempty" yaml:"rowStep,omitempty"`
}

// DefaultParameters returns the parameters the form starts with.
func DefaultParameters() CuttingParameters {
	const toolDiameter = 0.25
	return CuttingParameters{
		ToolDiameter: toolDiameter,
		Flutes:       2,
		RadialDepth:  DefaultRadialDepth(toolDiameter),
		AxialDepth:   1.0 / 16.0,
		FeedRate:     6.0,
		Boundary:     Boundary{X1: 1.0, Y1: 1.0, X2: 2.0, Y2: 2.0},
		ZTop:         1.5,
		ZBottom:      1.0,
		SafeZ:        1.75,
		RowStep:      StepStopBeforeOvershoot,
	}
}

// ZRange returns the Z bounds ordered so top >= bottom.
func (p CuttingParameters) ZRange() (top, bottom float64) {
	if p.ZTop < p.ZBottom {
		return p.ZBottom, p.ZTop
	}
	return p.ZTop, p.ZBottom
}

// Limits on the size of a generated toolpath. MaxSteps bounds the Z passes
// and the rows of one pass; MaxSweeps bounds their product.
const (
	MaxSteps  = 100000
	MaxSweeps = 1000000
)

// Validate checks the preconditions of toolpath generation.
func (p CuttingParameters) Validate() error {
	b := p.Boundary
	for _, v := range []float64{b.X1, b.Y1, b.X2, b.Y2, p.ZTop, p.ZBottom, p.SafeZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: got %g", ErrBoundary, v)
		}
	}
	if !(p.AxialDepth > 0) || math.IsInf(p.AxialDepth, 0) {
		return fmt.Errorf("%w: got %g", ErrAxialDepth, p.AxialDepth)
	}
	if !(p.RadialDepth > 0) || math.IsInf(p.RadialDepth, 0) {
		return fmt.Errorf("%w: got %g", ErrRadialDepth, p.RadialDepth)
	}
	top, bottom := p.ZRange()
	passes := (top - bottom) / p.AxialDepth
	rows := p.Boundary.Height() / p.RadialDepth
	if passes > MaxSteps || rows > MaxSteps || (passes+1)*(rows+1) > MaxSweeps {
		return fmt.Errorf("%w: %.0f passes of %.0f rows", ErrTooManySteps, math.Ceil(passes), math.Floor(rows)+1)
	}
	if p.SafeZ < top {
		return fmt.Errorf("%w: safe Z %g below top %g", ErrSafeZ, p.SafeZ, top)
	}
	if !(p.FeedRate > 0) || math.IsInf(p.FeedRate, 0) {
		return fmt.Errorf("%w: got %g", ErrFeedRate, p.FeedRate)
	}
	if _, err := ParseStepPolicy(string(p.RowStep)); err != nil {
		return err
	}
	return nil
}

// ResolveFeedRate returns the caller's feed rate when set, otherwise the
// conservative end of the computed feed range.
func (p CuttingParameters) ResolveFeedRate(d DerivedResult) float64 {
	if p.FeedRate > 0 {
		return p.FeedRate
	}
	return d.FeedRate.Min
}

// Derive runs the calculator for these parameters against a catalog material.
func (p CuttingParameters) Derive(c *Catalog, material string) (DerivedResult, error) {
	return c.ComputeDerived(material, p.ToolDiameter, p.Flutes, p.AxialDepth, p.RadialDepth)
}

// Job ties a material, a G-code profile and cutting parameters together for save/load.
type Job struct {
	Name       string            `json:"name" yaml:"name"`
	Material   string            `json:"material" yaml:"material"`
	Profile    string            `json:"profile,omitempty" yaml:"profile,omitempty"`
	Parameters CuttingParameters `json:"parameters" yaml:"parameters"`
}

// NewJob returns a job with the default material and parameters.
func NewJob() Job {
	return Job{
		Name:       "Untitled",
		Material:   DefaultMaterialName,
		Profile:    DefaultProfileName,
		Parameters: DefaultParameters(),
	}
}

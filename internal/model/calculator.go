package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DerivedResult holds the cutting parameters computed for one material and tool.
// Every range is evaluated at the two ends of the material's chip load interval;
// all outputs scale linearly with chip load so the endpoints bound the envelope.
type DerivedResult struct {
	Material             string  `json:"material"`
	SurfaceFeetPerMinute float64 `json:"sfm"`
	UnitHorsepower       float64 `json:"uhp"`
	SpindleRPM           float64 `json:"spindle_rpm"`
	FeedPerTooth         Range   `json:"feed_per_tooth"` // in/tooth
	FeedRate             Range   `json:"feed_rate"`      // in/min
	MaterialRemovalRate  Range   `json:"mrr"`            // in^3/min
	Horsepower           Range   `json:"horsepower"`     // hp at the spindle
}

// RadialStepRatio is the default radial step-over as a fraction of the tool diameter.
const RadialStepRatio = 0.33

// DefaultRadialDepth returns the radial depth of cut suggested for a tool diameter.
func DefaultRadialDepth(toolDiameter float64) float64 {
	return toolDiameter * RadialStepRatio
}

// AxialDepthPreset is a selectable axial depth of cut.
type AxialDepthPreset struct {
	Label string
	Value float64
}

// AxialDepthPresets lists the axial depth choices offered by the form, in inches.
var AxialDepthPresets = []AxialDepthPreset{
	{Label: "1/8", Value: 1.0 / 8.0},
	{Label: "1/10", Value: 1.0 / 10.0},
	{Label: "1/16", Value: 1.0 / 16.0},
	{Label: "1/25", Value: 1.0 / 25.0},
	{Label: "1/32", Value: 1.0 / 32.0},
	{Label: "1/50", Value: 1.0 / 50.0},
	{Label: "1/64", Value: 1.0 / 64.0},
	{Label: "1/100", Value: 1.0 / 100.0},
}

// AxialDepthPresetFor returns the preset matching value, if any.
func AxialDepthPresetFor(value float64) (AxialDepthPreset, bool) {
	for _, p := range AxialDepthPresets {
		if math.Abs(p.Value-value) < 1e-12 {
			return p, true
		}
	}
	return AxialDepthPreset{}, false
}

// ParseAxialDepth accepts a preset label such as "1/16" or a decimal value in inches.
func ParseAxialDepth(text string) (float64, error) {
	text = strings.TrimSpace(text)
	for _, p := range AxialDepthPresets {
		if p.Label == text {
			return p.Value, nil
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: axial depth %q", ErrInvalidParameter, text)
	}
	return v, nil
}

// SpindleRPM converts surface speed to spindle speed for a tool of the given diameter.
func SpindleRPM(sfm, toolDiameter float64) (float64, error) {
	if !(toolDiameter > 0) || math.IsInf(toolDiameter, 0) {
		return 0, fmt.Errorf("%w: got %g", ErrToolDiameter, toolDiameter)
	}
	return (sfm * 12) / (math.Pi * toolDiameter), nil
}

// ComputeDerived computes spindle speed, feed rate, removal rate and power
// for a face-milling cut. It has no side effects and may be called on every edit.
func ComputeDerived(material MaterialProperty, toolDiameter float64, flutes int, axialDOC, radialDOC float64) (DerivedResult, error) {
	if err := material.Validate(); err != nil {
		return DerivedResult{}, err
	}
	rpm, err := SpindleRPM(material.SurfaceFeetPerMinute, toolDiameter)
	if err != nil {
		return DerivedResult{}, err
	}
	if flutes <= 0 {
		return DerivedResult{}, fmt.Errorf("%w: got %d", ErrFluteCount, flutes)
	}
	if !validDepth(axialDOC) {
		return DerivedResult{}, fmt.Errorf("%w: axial %g", ErrDepthOfCut, axialDOC)
	}
	if !validDepth(radialDOC) {
		return DerivedResult{}, fmt.Errorf("%w: radial %g", ErrDepthOfCut, radialDOC)
	}

	ipt := material.FeedPerTooth
	feed := ipt.Scale(rpm * float64(flutes))
	mrr := feed.Scale(axialDOC * radialDOC)
	hp := mrr.Scale(material.UnitHorsepower)

	return DerivedResult{
		Material:             material.Name,
		SurfaceFeetPerMinute: material.SurfaceFeetPerMinute,
		UnitHorsepower:       material.UnitHorsepower,
		SpindleRPM:           rpm,
		FeedPerTooth:         ipt,
		FeedRate:             feed,
		MaterialRemovalRate:  mrr,
		Horsepower:           hp,
	}, nil
}

func validDepth(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// SummaryLine is one labelled value of the derived result display.
type SummaryLine struct {
	Label string
	Value string
}

// Summary formats the derived result the way the indicator panel shows it.
func (d DerivedResult) Summary() []SummaryLine {
	return []SummaryLine{
		{Label: "Material SFM (Surface-Ft/Min)", Value: fmt.Sprintf("%d", int(d.SurfaceFeetPerMinute))},
		{Label: "Material RPM (SFM * 12 / (π * DIA))", Value: fmt.Sprintf("%d", int(d.SpindleRPM))},
		{Label: "Material FEED (in-tooth)", Value: fmt.Sprintf("%g ... %g", d.FeedPerTooth.Min, d.FeedPerTooth.Max)},
		{Label: "Material FEED (in/min)", Value: fmt.Sprintf("%0.1f ... %0.1f", d.FeedRate.Min, d.FeedRate.Max)},
		{Label: "Material RR (in^3/min)", Value: fmt.Sprintf("%0.1f ... %0.1f", d.MaterialRemovalRate.Min, d.MaterialRemovalRate.Max)},
		{Label: "Material UHP (unit-hp)", Value: fmt.Sprintf("%f", d.UnitHorsepower)},
		{Label: "Material HP (required)", Value: fmt.Sprintf("%0.3f ... %0.3f", d.Horsepower.Min, d.Horsepower.Max)},
	}
}

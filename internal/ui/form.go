package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/facer/internal/model"
)

// FormValues is the raw text of the facing form.
type FormValues struct {
	X1, X2, Y1, Y2 string
	ZTop, ZBottom  string
	SafeZ          string
	ToolDiameter   string
	Flutes         string
	RadialDepth    string
	AxialDepth     string // preset label such as "1/16" or a decimal value
	FeedRate       string
	RowStep        string
}

// FieldError reports an entry whose text is not a valid number.
type FieldError struct {
	Field string
	Text  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q is not a number", e.Field, e.Text)
}

func (e *FieldError) Unwrap() error { return model.ErrInvalidParameter }

// formatNumber renders a value for an entry without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// AxialDepthLabels returns the select options of the axial depth control.
func AxialDepthLabels() []string {
	labels := make([]string, len(model.AxialDepthPresets))
	for i, p := range model.AxialDepthPresets {
		labels[i] = p.Label
	}
	return labels
}

// FormatForm fills the form from parameters.
func FormatForm(p model.CuttingParameters) FormValues {
	axial := formatNumber(p.AxialDepth)
	if preset, ok := model.AxialDepthPresetFor(p.AxialDepth); ok {
		axial = preset.Label
	}
	return FormValues{
		X1:           formatNumber(p.Boundary.X1),
		X2:           formatNumber(p.Boundary.X2),
		Y1:           formatNumber(p.Boundary.Y1),
		Y2:           formatNumber(p.Boundary.Y2),
		ZTop:         formatNumber(p.ZTop),
		ZBottom:      formatNumber(p.ZBottom),
		SafeZ:        formatNumber(p.SafeZ),
		ToolDiameter: formatNumber(p.ToolDiameter),
		Flutes:       strconv.Itoa(p.Flutes),
		RadialDepth:  formatNumber(p.RadialDepth),
		AxialDepth:   axial,
		FeedRate:     formatNumber(p.FeedRate),
		RowStep:      string(p.RowStep),
	}
}

// ParseForm builds cutting parameters from the form text. Every field is
// checked and all problems are reported together. Values are only parsed
// here; range checks belong to the calculator and generator.
func ParseForm(v FormValues) (model.CuttingParameters, error) {
	var errs []error
	num := func(field, text string) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			errs = append(errs, &FieldError{Field: field, Text: text})
		}
		return f
	}

	p := model.CuttingParameters{
		Boundary: model.Boundary{
			X1: num("x1", v.X1),
			X2: num("x2", v.X2),
			Y1: num("y1", v.Y1),
			Y2: num("y2", v.Y2),
		},
		ZTop:         num("z1", v.ZTop),
		ZBottom:      num("z2", v.ZBottom),
		SafeZ:        num("safe Z", v.SafeZ),
		ToolDiameter: num("tool diameter", v.ToolDiameter),
		RadialDepth:  num("radial DOC", v.RadialDepth),
		FeedRate:     num("feed", v.FeedRate),
	}

	flutes, err := strconv.Atoi(strings.TrimSpace(v.Flutes))
	if err != nil {
		errs = append(errs, &FieldError{Field: "flutes", Text: v.Flutes})
	}
	p.Flutes = flutes

	p.AxialDepth = parseAxialDepth(v.AxialDepth, &errs)

	step, err := model.ParseStepPolicy(strings.TrimSpace(v.RowStep))
	if err != nil {
		errs = append(errs, err)
	}
	p.RowStep = step

	return p, errors.Join(errs...)
}

func parseAxialDepth(text string, errs *[]error) float64 {
	v, err := model.ParseAxialDepth(text)
	if err != nil {
		*errs = append(*errs, &FieldError{Field: "axial DOC", Text: strings.TrimSpace(text)})
	}
	return v
}

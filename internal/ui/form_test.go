package ui

import (
	"errors"
	"testing"

	"github.com/piwi3910/facer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParseFormRoundTrip(t *testing.T) {
	params := model.DefaultParameters()

	values := FormatForm(params)
	assert.Equal(t, "1/16", values.AxialDepth)
	assert.Equal(t, "0.25", values.ToolDiameter)
	assert.Equal(t, "2", values.Flutes)

	parsed, err := ParseForm(values)
	require.NoError(t, err)
	assert.Equal(t, params, parsed)
}

func TestParseForm_DecimalAxialDepth(t *testing.T) {
	values := FormatForm(model.DefaultParameters())
	values.AxialDepth = " 0.03 "

	parsed, err := ParseForm(values)
	require.NoError(t, err)
	assert.Equal(t, 0.03, parsed.AxialDepth)
}

func TestParseForm_ReportsEveryBadField(t *testing.T) {
	values := FormatForm(model.DefaultParameters())
	values.X1 = "abc"
	values.Flutes = "2.5"
	values.AxialDepth = "deep"

	_, err := ParseForm(values)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidParameter))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "x1", fe.Field)
	assert.Contains(t, err.Error(), "flutes")
	assert.Contains(t, err.Error(), "axial DOC")
}

func TestParseForm_BadStepPolicy(t *testing.T) {
	values := FormatForm(model.DefaultParameters())
	values.RowStep = "zigzag"

	_, err := ParseForm(values)
	assert.ErrorIs(t, err, model.ErrStepPolicy)
}

func TestParseForm_EmptyStepPolicyDefaults(t *testing.T) {
	values := FormatForm(model.DefaultParameters())
	values.RowStep = ""

	parsed, err := ParseForm(values)
	require.NoError(t, err)
	assert.Equal(t, model.StepStopBeforeOvershoot, parsed.RowStep)
}

func TestAxialDepthLabels(t *testing.T) {
	labels := AxialDepthLabels()
	require.Len(t, labels, len(model.AxialDepthPresets))
	assert.Equal(t, "1/8", labels[0])
	assert.Equal(t, "1/100", labels[len(labels)-1])
}

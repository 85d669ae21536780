package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mildSteel(t *testing.T) MaterialProperty {
	t.Helper()
	m, err := DefaultCatalog().Lookup("Mild Steel")
	require.NoError(t, err)
	return m
}

func TestComputeDerivedMildSteel(t *testing.T) {
	d, err := ComputeDerived(mildSteel(t), 0.25, 2, 0.0625, 0.0825)
	require.NoError(t, err)

	assert.Equal(t, "Mild Steel", d.Material)
	rpm := 90 * 12 / (math.Pi * 0.25)
	assert.InDelta(t, rpm, d.SpindleRPM, 1e-9)
	assert.InDelta(t, 1375.10, d.SpindleRPM, 0.005)
	assert.Equal(t, Range{Min: 0.005, Max: 0.01}, d.FeedPerTooth)
	assert.InDelta(t, 13.751, d.FeedRate.Min, 0.001)
	assert.InDelta(t, 27.502, d.FeedRate.Max, 0.001)
	assert.InDelta(t, 0.07090, d.MaterialRemovalRate.Min, 0.00001)
	assert.InDelta(t, 0.14181, d.MaterialRemovalRate.Max, 0.00001)
	assert.InDelta(t, 0.09926, d.Horsepower.Min, 0.00001)
	assert.InDelta(t, 0.19853, d.Horsepower.Max, 0.00001)
}

func TestComputeDerivedRangesOrdered(t *testing.T) {
	for _, m := range DefaultCatalog().Materials() {
		for _, dia := range []float64{0.125, 0.25, 1, 3} {
			for _, flutes := range []int{1, 2, 4, 6} {
				d, err := ComputeDerived(m, dia, flutes, 1.0/16.0, dia*RadialStepRatio)
				require.NoError(t, err, m.Name)
				assert.LessOrEqual(t, d.FeedRate.Min, d.FeedRate.Max, m.Name)
				assert.LessOrEqual(t, d.MaterialRemovalRate.Min, d.MaterialRemovalRate.Max, m.Name)
				assert.LessOrEqual(t, d.Horsepower.Min, d.Horsepower.Max, m.Name)
			}
		}
	}
}

func TestComputeDerivedZeroDepthGivesZeroRemoval(t *testing.T) {
	d, err := ComputeDerived(mildSteel(t), 0.25, 2, 0, 0.0825)
	require.NoError(t, err)
	assert.Zero(t, d.MaterialRemovalRate.Max)
	assert.Zero(t, d.Horsepower.Max)
	assert.Greater(t, d.FeedRate.Min, 0.0)
}

func TestComputeDerivedErrors(t *testing.T) {
	m := mildSteel(t)
	tests := []struct {
		name     string
		dia      float64
		flutes   int
		axial    float64
		radial   float64
		expected error
	}{
		{"zero diameter", 0, 2, 0.0625, 0.0825, ErrToolDiameter},
		{"negative diameter", -0.25, 2, 0.0625, 0.0825, ErrToolDiameter},
		{"infinite diameter", math.Inf(1), 2, 0.0625, 0.0825, ErrToolDiameter},
		{"NaN diameter", math.NaN(), 2, 0.0625, 0.0825, ErrToolDiameter},
		{"zero flutes", 0.25, 0, 0.0625, 0.0825, ErrFluteCount},
		{"negative flutes", 0.25, -3, 0.0625, 0.0825, ErrFluteCount},
		{"negative axial", 0.25, 2, -0.1, 0.0825, ErrDepthOfCut},
		{"NaN radial", 0.25, 2, 0.0625, math.NaN(), ErrDepthOfCut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeDerived(m, tt.dia, tt.flutes, tt.axial, tt.radial)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}
}

func TestComputeDerivedRejectsInvalidMaterial(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *MaterialProperty)
	}{
		{"NaN SFM", func(m *MaterialProperty) { m.SurfaceFeetPerMinute = math.NaN() }},
		{"zero SFM", func(m *MaterialProperty) { m.SurfaceFeetPerMinute = 0 }},
		{"NaN unit horsepower", func(m *MaterialProperty) { m.UnitHorsepower = math.NaN() }},
		{"inverted chip load", func(m *MaterialProperty) { m.FeedPerTooth = Range{Min: 0.01, Max: 0.005} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mildSteel(t)
			tt.mutate(&m)
			d, err := ComputeDerived(m, 0.25, 2, 0.0625, 0.0825)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMaterial), "got %v", err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
			assert.Equal(t, DerivedResult{}, d)
		})
	}
}

func TestComputeDerivedErrorsAreDistinct(t *testing.T) {
	m := mildSteel(t)
	_, errDia := ComputeDerived(m, 0, 2, 0.1, 0.1)
	_, errFlutes := ComputeDerived(m, 0.25, 0, 0.1, 0.1)
	_, errMaterial := DefaultCatalog().ComputeDerived("Unobtainium", 0.25, 2, 0.1, 0.1)

	assert.False(t, errors.Is(errDia, ErrFluteCount))
	assert.False(t, errors.Is(errFlutes, ErrToolDiameter))
	assert.True(t, errors.Is(errMaterial, ErrUnknownMaterial))
	assert.False(t, errors.Is(errMaterial, ErrToolDiameter))
}

func TestComputeDerivedIsIdempotent(t *testing.T) {
	m := mildSteel(t)
	a, err := ComputeDerived(m, 0.5, 4, 0.1, 0.165)
	require.NoError(t, err)
	b, err := ComputeDerived(m, 0.5, 4, 0.1, 0.165)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSpindleRPM(t *testing.T) {
	rpm, err := SpindleRPM(300, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 300*12/(math.Pi*0.5), rpm, 1e-9)

	_, err = SpindleRPM(300, 0)
	assert.ErrorIs(t, err, ErrToolDiameter)
}

func TestDefaultRadialDepth(t *testing.T) {
	assert.InDelta(t, 0.0825, DefaultRadialDepth(0.25), 1e-12)
	assert.InDelta(t, 0.33, DefaultRadialDepth(1), 1e-12)
}

func TestAxialDepthPresets(t *testing.T) {
	require.Len(t, AxialDepthPresets, 8)
	for i := 1; i < len(AxialDepthPresets); i++ {
		assert.Greater(t, AxialDepthPresets[i-1].Value, AxialDepthPresets[i].Value, "presets are listed deepest first")
	}

	p, ok := AxialDepthPresetFor(1.0 / 16.0)
	require.True(t, ok)
	assert.Equal(t, "1/16", p.Label)

	_, ok = AxialDepthPresetFor(0.3)
	assert.False(t, ok)
}

func TestParseAxialDepth(t *testing.T) {
	v, err := ParseAxialDepth(" 1/25 ")
	require.NoError(t, err)
	assert.Equal(t, 1.0/25.0, v)

	v, err = ParseAxialDepth("0.03")
	require.NoError(t, err)
	assert.Equal(t, 0.03, v)

	_, err = ParseAxialDepth("1/3")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestDerivedSummary(t *testing.T) {
	d, err := ComputeDerived(mildSteel(t), 0.25, 2, 0.0625, 0.0825)
	require.NoError(t, err)

	lines := d.Summary()
	require.Len(t, lines, 7)
	assert.Equal(t, "90", lines[0].Value)
	assert.Equal(t, "1375", lines[1].Value)
	assert.Equal(t, "0.005 ... 0.01", lines[2].Value)
	assert.Equal(t, "13.8 ... 27.5", lines[3].Value)
	assert.Equal(t, "0.1 ... 0.1", lines[4].Value)
	assert.Equal(t, "1.400000", lines[5].Value)
	assert.Equal(t, "0.099 ... 0.199", lines[6].Value)
}

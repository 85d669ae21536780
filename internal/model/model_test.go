package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParametersAreValid(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())
	assert.InDelta(t, 0.0825, p.RadialDepth, 1e-12)
	assert.Equal(t, 1.0/16.0, p.AxialDepth)
	assert.Equal(t, Boundary{X1: 1, Y1: 1, X2: 2, Y2: 2}, p.Boundary)
	assert.Equal(t, StepStopBeforeOvershoot, p.RowStep)
}

func TestBoundaryNormalizedSwapsYOnly(t *testing.T) {
	b := Boundary{X1: 3, Y1: 5, X2: 1, Y2: 2}.Normalized()
	assert.Equal(t, 3.0, b.X1)
	assert.Equal(t, 1.0, b.X2)
	assert.Equal(t, 2.0, b.Y1)
	assert.Equal(t, 5.0, b.Y2)
	assert.Equal(t, 2.0, b.Width())
	assert.Equal(t, 3.0, b.Height())
}

func TestZRange(t *testing.T) {
	p := DefaultParameters()
	top, bottom := p.ZRange()
	assert.Equal(t, 1.5, top)
	assert.Equal(t, 1.0, bottom)

	p.ZTop, p.ZBottom = 1.0, 1.5
	top, bottom = p.ZRange()
	assert.Equal(t, 1.5, top)
	assert.Equal(t, 1.0, bottom)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *CuttingParameters)
		expected error
	}{
		{"zero axial", func(p *CuttingParameters) { p.AxialDepth = 0 }, ErrAxialDepth},
		{"negative axial", func(p *CuttingParameters) { p.AxialDepth = -0.1 }, ErrAxialDepth},
		{"zero radial", func(p *CuttingParameters) { p.RadialDepth = 0 }, ErrRadialDepth},
		{"safe Z below top", func(p *CuttingParameters) { p.SafeZ = 1.4 }, ErrSafeZ},
		{"safe Z below swapped top", func(p *CuttingParameters) { p.ZTop, p.ZBottom, p.SafeZ = 1.0, 2.0, 1.75 }, ErrSafeZ},
		{"zero feed", func(p *CuttingParameters) { p.FeedRate = 0 }, ErrFeedRate},
		{"NaN boundary", func(p *CuttingParameters) { p.Boundary.X2 = math.NaN() }, ErrBoundary},
		{"infinite Z", func(p *CuttingParameters) { p.ZBottom = math.Inf(-1) }, ErrBoundary},
		{"bad step policy", func(p *CuttingParameters) { p.RowStep = "sideways" }, ErrStepPolicy},
		{"axial depth overflows pass count", func(p *CuttingParameters) { p.AxialDepth = 1e-300 }, ErrTooManySteps},
		{"axial depth too fine", func(p *CuttingParameters) { p.AxialDepth = 1e-10 }, ErrTooManySteps},
		{"radial depth too fine", func(p *CuttingParameters) { p.RadialDepth = 1e-12 }, ErrTooManySteps},
		{"too many sweeps", func(p *CuttingParameters) { p.AxialDepth, p.RadialDepth = 1e-4, 1e-3 }, ErrTooManySteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}
}

func TestValidateAcceptsFineSteps(t *testing.T) {
	p := DefaultParameters()
	p.AxialDepth, p.RadialDepth = 0.001, 0.01
	assert.NoError(t, p.Validate())
}

func TestValidateAcceptsSafeZAtTop(t *testing.T) {
	p := DefaultParameters()
	p.SafeZ = p.ZTop
	assert.NoError(t, p.Validate())
}

func TestParseStepPolicy(t *testing.T) {
	p, err := ParseStepPolicy("")
	require.NoError(t, err)
	assert.Equal(t, StepStopBeforeOvershoot, p)

	p, err = ParseStepPolicy("clamp")
	require.NoError(t, err)
	assert.Equal(t, StepClampToBoundary, p)
	assert.Equal(t, "Clamp to boundary", p.String())

	_, err = ParseStepPolicy("zigzag")
	assert.ErrorIs(t, err, ErrStepPolicy)
}

func TestResolveFeedRate(t *testing.T) {
	d := DerivedResult{FeedRate: Range{Min: 13.7, Max: 27.5}}

	p := DefaultParameters()
	assert.Equal(t, 6.0, p.ResolveFeedRate(d))

	p.FeedRate = 0
	assert.Equal(t, 13.7, p.ResolveFeedRate(d))
}

func TestDerive(t *testing.T) {
	p := DefaultParameters()
	d, err := p.Derive(DefaultCatalog(), "Mild Steel")
	require.NoError(t, err)
	assert.InDelta(t, 1375.0987, d.SpindleRPM, 0.0001)

	_, err = p.Derive(DefaultCatalog(), "Balsa")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestNewJob(t *testing.T) {
	job := NewJob()
	assert.Equal(t, DefaultMaterialName, job.Material)
	assert.Equal(t, DefaultProfileName, job.Profile)
	assert.Equal(t, DefaultParameters(), job.Parameters)
}

func TestGetProfileFallsBackToFacing(t *testing.T) {
	p := GetProfile("NonExistent")
	assert.Equal(t, DefaultProfileName, p.Name)
	assert.Equal(t, []string{"G20"}, p.StartCode)
	assert.Equal(t, []string{"M2"}, p.EndCode)
}

func TestFindProfileSearchesCustom(t *testing.T) {
	custom := []GCodeProfile{{Name: "MyCustom", RapidMove: "G0", FeedMove: "G1"}}

	p, ok := FindProfile("MyCustom", custom)
	require.True(t, ok)
	assert.Equal(t, "MyCustom", p.Name)

	p, ok = FindProfile("Grbl", custom)
	require.True(t, ok)
	assert.True(t, p.IsBuiltIn)

	_, ok = FindProfile("Missing", custom)
	assert.False(t, ok)
}

func TestGetProfileNamesIncludesCustom(t *testing.T) {
	names := GetProfileNames([]GCodeProfile{{Name: "CustomA"}, {Name: "CustomB"}})
	assert.Equal(t, len(GCodeProfiles)+2, len(names))
	assert.Equal(t, DefaultProfileName, names[0])
	assert.Contains(t, names, "Grbl")
	assert.Contains(t, names, "CustomB")
}

func TestBuiltInProfilesUseInches(t *testing.T) {
	for _, p := range GCodeProfiles {
		assert.Equal(t, "inches", p.Units, p.Name)
		assert.Contains(t, p.StartCode, "G20", p.Name)
		assert.NotEmpty(t, p.RapidMove, p.Name)
		assert.NotEmpty(t, p.FeedMove, p.Name)
	}
}

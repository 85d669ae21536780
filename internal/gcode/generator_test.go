package gcode

import (
	"errors"
	"reflect"
	"testing"

	"github.com/piwi3910/facer/internal/model"
)

// newTestParams returns the form defaults: (1,1)-(2,2), Z 1.5 -> 1.0 by 1/16.
func newTestParams() model.CuttingParameters {
	return model.DefaultParameters()
}

func countComment(prog Program, comment string) int {
	n := 0
	for _, m := range prog.Motions {
		if m.Comment == comment {
			n++
		}
	}
	return n
}

func TestGenerateFacingProgram_FirstMotions(t *testing.T) {
	prog, err := GenerateFacingProgram(newTestParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Len() < 3 {
		t.Fatalf("expected at least 3 motions, got %d", prog.Len())
	}

	want := []Motion{
		RapidZ(1.75, CommentSafeZ),
		RapidXY(2, 1, CommentStartXY),
		RapidZ(1.4375, CommentStartZ),
	}
	for i, w := range want {
		if !reflect.DeepEqual(prog.Motions[i], w) {
			t.Errorf("motion %d: got %+v, want %+v", i, prog.Motions[i], w)
		}
	}
}

func TestGenerateFacingProgram_Shape(t *testing.T) {
	prog, err := GenerateFacingProgram(newTestParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 8 passes of 3 positioning moves + 13 rows of sweep/next, then M2
	if got := countComment(prog, CommentStartZ); got != 8 {
		t.Errorf("expected 8 passes, got %d", got)
	}
	if got := countComment(prog, CommentSweep); got != 8*13 {
		t.Errorf("expected %d sweeps, got %d", 8*13, got)
	}
	if prog.Len() != 8*(3+2*13)+1 {
		t.Errorf("expected %d motions, got %d", 8*(3+2*13)+1, prog.Len())
	}
	if last := prog.Motions[prog.Len()-1]; last.Kind != MotionEnd {
		t.Errorf("expected program to end with MotionEnd, got %v", last.Kind)
	}

	var depths []float64
	for _, m := range prog.Motions {
		if m.Comment == CommentStartZ {
			depths = append(depths, m.Z)
		}
	}
	if depths[0] != 1.4375 || depths[len(depths)-1] != 1.0 {
		t.Errorf("expected depths from 1.4375 to 1.0, got %v", depths)
	}
	for i := 1; i < len(depths); i++ {
		if depths[i] >= depths[i-1] {
			t.Errorf("depths must descend: %v", depths)
		}
	}
}

func TestGenerateFacingProgram_SweepsAlternate(t *testing.T) {
	prog, err := GenerateFacingProgram(newTestParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Row edges alternate through the whole program, across pass boundaries too.
	expect := 2.0
	for _, m := range prog.Motions {
		if m.Kind != MotionLinear {
			continue
		}
		if m.X != expect {
			t.Fatalf("sweep at Y=%g ended on X=%g, want %g", m.Y, m.X, expect)
		}
		if m.Feed != 6.0 {
			t.Errorf("expected feed 6, got %g", m.Feed)
		}
		if expect == 2.0 {
			expect = 1.0
		} else {
			expect = 2.0
		}
	}

	// 13 rows per pass leaves the second pass starting from X1.
	var starts []float64
	for _, m := range prog.Motions {
		if m.Comment == CommentStartXY {
			starts = append(starts, m.X)
		}
	}
	if starts[0] != 2 || starts[1] != 1 || starts[2] != 2 {
		t.Errorf("unexpected pass start edges %v", starts)
	}
}

func TestGenerateFacingProgram_SingleZPass(t *testing.T) {
	p := newTestParams()
	p.ZTop = 1.0
	p.ZBottom = 1.0

	prog, err := GenerateFacingProgram(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := countComment(prog, CommentStartZ); got != 1 {
		t.Fatalf("expected exactly 1 pass, got %d", got)
	}
	if prog.Motions[2].Z != 1.0 {
		t.Errorf("expected pass at Z=1.0, got %g", prog.Motions[2].Z)
	}
}

func TestGenerateFacingProgram_NarrowRectangleOneRow(t *testing.T) {
	p := newTestParams()
	p.Boundary = model.Boundary{X1: 1, Y1: 1, X2: 1.05, Y2: 1.05}

	prog, err := GenerateFacingProgram(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	passes := countComment(prog, CommentStartZ)
	if got := countComment(prog, CommentSweep); got != passes {
		t.Errorf("expected one row per pass (%d), got %d", passes, got)
	}
}

func TestGenerateFacingProgram_StepPolicy(t *testing.T) {
	p := newTestParams()
	p.RadialDepth = 0.3
	p.ZBottom = 1.4375

	stop, err := GenerateFacingProgram(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.RowStep = model.StepClampToBoundary
	clamp, err := GenerateFacingProgram(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := countComment(stop, CommentSweep); got != 4 {
		t.Errorf("stop policy: expected 4 rows, got %d", got)
	}
	if got := countComment(clamp, CommentSweep); got != 5 {
		t.Errorf("clamp policy: expected 5 rows, got %d", got)
	}
	lastSweep := Motion{}
	for _, m := range clamp.Motions {
		if m.Kind == MotionLinear {
			lastSweep = m
		}
	}
	if lastSweep.Y != 2.0 {
		t.Errorf("clamp policy: expected last row at Y=2, got %g", lastSweep.Y)
	}
}

func TestGenerateFacingProgram_Normalization(t *testing.T) {
	base, err := GenerateFacingProgram(newTestParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	swapped := newTestParams()
	swapped.Boundary.Y1, swapped.Boundary.Y2 = 2, 1
	swapped.ZTop, swapped.ZBottom = 1.0, 1.5
	got, err := GenerateFacingProgram(swapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(base, got) {
		t.Error("swapping Y and Z bounds should not change the program")
	}

	// X edges are kept as given: the raster starts from X2.
	mirrored := newTestParams()
	mirrored.Boundary.X1, mirrored.Boundary.X2 = 2, 1
	prog, err := GenerateFacingProgram(mirrored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Motions[1].X != 1 {
		t.Errorf("expected start at X2=1, got %g", prog.Motions[1].X)
	}
}

func TestGenerateFacingProgram_Deterministic(t *testing.T) {
	a, err := GenerateFacingProgram(newTestParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateFacingProgram(newTestParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical programs for identical inputs")
	}
}

func TestGenerateFacingProgram_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.CuttingParameters)
		want   error
	}{
		{"zero axial depth", func(p *model.CuttingParameters) { p.AxialDepth = 0 }, model.ErrAxialDepth},
		{"zero radial depth", func(p *model.CuttingParameters) { p.RadialDepth = 0 }, model.ErrRadialDepth},
		{"safe Z below top", func(p *model.CuttingParameters) { p.SafeZ = 1.2 }, model.ErrSafeZ},
		{"no feed rate", func(p *model.CuttingParameters) { p.FeedRate = 0 }, model.ErrFeedRate},
		{"vanishing axial depth", func(p *model.CuttingParameters) { p.AxialDepth = 1e-300 }, model.ErrTooManySteps},
		{"vanishing radial depth", func(p *model.CuttingParameters) { p.RadialDepth = 1e-12 }, model.ErrTooManySteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParams()
			tt.mutate(&p)
			_, err := GenerateFacingProgram(p)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, model.ErrInvalidParameter) {
				t.Errorf("expected an invalid parameter error, got %v", err)
			}
		})
	}
}

func TestZLevels(t *testing.T) {
	tests := []struct {
		name            string
		top, bottom, dz float64
		want            []float64
	}{
		{"even steps", 1.5, 1.0, 0.25, []float64{1.25, 1.0}},
		{"clamped last step", 1.0, 0.0, 0.4, []float64{0.6, 0.2, 0.0}},
		{"flat", 2.0, 2.0, 0.1, []float64{2.0}},
		{"inverted", 1.0, 1.5, 0.25, []float64{1.25, 1.0}},
		{"step larger than range", 1.0, 0.9, 0.5, []float64{0.9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ZLevels(tt.top, tt.bottom, tt.dz)
			if len(got) != len(tt.want) {
				t.Fatalf("ZLevels() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if diff := got[i] - tt.want[i]; diff > 1e-12 || diff < -1e-12 {
					t.Errorf("ZLevels()[%d] = %g, want %g", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRowPositions(t *testing.T) {
	got := RowPositions(1, 2, 0.25, model.StepStopBeforeOvershoot)
	want := []float64{1, 1.25, 1.5, 1.75, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RowPositions() = %v, want %v", got, want)
	}

	// Exact fit: clamping adds nothing.
	if got := RowPositions(1, 2, 0.25, model.StepClampToBoundary); len(got) != 5 {
		t.Errorf("expected 5 rows with exact fit, got %v", got)
	}

	if got := RowPositions(2, 1, 0.4, model.StepClampToBoundary); len(got) != 4 || got[3] != 2 {
		t.Errorf("expected rows 1, 1.4, 1.8, 2, got %v", got)
	}
}

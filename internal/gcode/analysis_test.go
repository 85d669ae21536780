package gcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/facer/internal/model"
)

func TestAnalyze_FacingProgram(t *testing.T) {
	prog, err := GenerateFacingProgram(twoRowParams())
	require.NoError(t, err)

	s := Analyze(prog.Moves())
	assert.Equal(t, 1, s.Passes)
	assert.Equal(t, 2, s.Rows)
	// First sweep stays on X2, second crosses the 1 inch width.
	assert.InDelta(t, 1.0, s.CutLength, 1e-9)
	assert.InDelta(t, float64(10*time.Second), float64(s.CutTime), float64(time.Millisecond))
	assert.Equal(t, 1.4375, s.MinZ)
	assert.Equal(t, 1.75, s.MaxZ)
	assert.Greater(t, s.RapidLength, 0.0)
}

func TestAnalyze_DefaultParameters(t *testing.T) {
	prog, err := GenerateFacingProgram(model.DefaultParameters())
	require.NoError(t, err)

	s := Analyze(prog.Moves())
	assert.Equal(t, 8, s.Passes)
	assert.Equal(t, 8*13, s.Rows)
	assert.Equal(t, 1.0, s.MinZ)
}

func TestAnalyze_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Analyze(nil))
}

func TestProgramMoves(t *testing.T) {
	prog := Program{Motions: []Motion{
		RapidZ(2, ""),
		RapidXY(1, 1, ""),
		RapidZ(0.5, ""),
		Linear(3, 1, 10, ""),
		RapidY(1.5, ""),
		End(),
		RapidZ(9, ""),
	}}

	moves := prog.Moves()
	require.Len(t, moves, 5, "motions after End are not expanded")
	assert.Equal(t, MoveRetract, moves[0].Type)
	assert.Equal(t, MoveRapid, moves[1].Type)
	assert.Equal(t, MoveRapid, moves[2].Type)
	assert.Equal(t, MoveFeed, moves[3].Type)
	assert.Equal(t, 10.0, moves[3].FeedRate)
	assert.Equal(t, GCodeMove{Type: MoveRapid, FromX: 3, FromY: 1, FromZ: 0.5, ToX: 3, ToY: 1.5, ToZ: 0.5, FeedRate: 10}, moves[4])
}

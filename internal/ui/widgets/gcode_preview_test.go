package widgets

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/model"
)

func TestToolpathPreview_Empty(t *testing.T) {
	test.NewTempApp(t)
	tp := NewToolpathPreview(400, 300)

	r := test.TempWidgetRenderer(t, tp)
	assert.Empty(t, r.Objects())
	assert.Equal(t, float32(100), r.MinSize().Width)
}

func TestToolpathPreview_SetProgram(t *testing.T) {
	test.NewTempApp(t)
	params := model.DefaultParameters()
	prog, err := gcode.GenerateFacingProgram(params)
	require.NoError(t, err)

	tp := NewToolpathPreview(400, 300)
	tp.SetProgram(prog, params.Boundary)
	r := test.TempWidgetRenderer(t, tp)

	assert.NotEmpty(t, r.Objects())
	size := r.MinSize()
	assert.LessOrEqual(t, size.Width, float32(400))
	assert.LessOrEqual(t, size.Height, float32(300))

	tp.Clear()
	r.Refresh()
	assert.Empty(t, r.Objects())
}

func TestViewportFlipsY(t *testing.T) {
	vp := viewport{minX: 1, maxY: 2, scale: 100}

	top := vp.pos(1, 2)
	bottom := vp.pos(1, 1)
	assert.Equal(t, previewMargin, top.Y)
	assert.Equal(t, previewMargin+100, bottom.Y)
	assert.Equal(t, previewMargin, top.X)
}

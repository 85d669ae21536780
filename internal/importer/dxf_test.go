package importer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

func writeDXF(t *testing.T, draw func(d *drawing.Drawing)) string {
	t.Helper()
	d := dxf.NewDrawing()
	draw(d)
	path := filepath.Join(t.TempDir(), "stock.dxf")
	require.NoError(t, d.SaveAs(path))
	return path
}

func TestImportBoundaryDXF_Lines(t *testing.T) {
	path := writeDXF(t, func(d *drawing.Drawing) {
		d.Line(0.5, 0.25, 0, 3.5, 0.25, 0)
		d.Line(3.5, 0.25, 0, 3.5, 2.25, 0)
		d.Line(3.5, 2.25, 0, 0.5, 2.25, 0)
		d.Line(0.5, 2.25, 0, 0.5, 0.25, 0)
	})

	result := ImportBoundaryDXF(path)
	require.Empty(t, result.Errors)
	assert.Equal(t, 4, result.Entities)
	assert.InDelta(t, 0.5, result.Boundary.X1, 1e-9)
	assert.InDelta(t, 0.25, result.Boundary.Y1, 1e-9)
	assert.InDelta(t, 3.5, result.Boundary.X2, 1e-9)
	assert.InDelta(t, 2.25, result.Boundary.Y2, 1e-9)
}

func TestImportBoundaryDXF_CircleExtents(t *testing.T) {
	path := writeDXF(t, func(d *drawing.Drawing) {
		d.Circle(2, 2, 0, 1.5)
	})

	result := ImportBoundaryDXF(path)
	require.Empty(t, result.Errors)
	assert.InDelta(t, 0.5, result.Boundary.X1, 1e-9)
	assert.InDelta(t, 3.5, result.Boundary.Y2, 1e-9)
	assert.InDelta(t, 3.0, result.Boundary.Width(), 1e-9)
}

func TestImportBoundaryDXF_Degenerate(t *testing.T) {
	path := writeDXF(t, func(d *drawing.Drawing) {
		d.Line(0, 1, 0, 4, 1, 0)
	})

	result := ImportBoundaryDXF(path)
	assert.NotEmpty(t, result.Errors)
}

func TestImportBoundaryDXF_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.dxf")
	require.NoError(t, os.WriteFile(path, []byte("not a drawing"), 0644))

	result := ImportBoundaryDXF(path)
	assert.NotEmpty(t, result.Errors)
}

func TestExtents(t *testing.T) {
	e := newExtents()
	assert.True(t, e.empty)
	e.add(1, -2)
	e.add(-3, 4)
	assert.False(t, e.empty)
	assert.Equal(t, -3.0, e.minX)
	assert.Equal(t, 4.0, e.maxY)
	assert.False(t, math.IsInf(e.maxX, 0))
}

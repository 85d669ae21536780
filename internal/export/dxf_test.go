package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
)

func TestExportToolpathDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolpath.dxf")
	prog, err := gcode.GenerateFacingProgram(model.DefaultParameters())
	require.NoError(t, err)

	lines, err := ExportToolpathDXF(path, prog)
	require.NoError(t, err)

	nonZero := 0
	for _, m := range prog.Moves() {
		if m.FromX != m.ToX || m.FromY != m.ToY || m.FromZ != m.ToZ {
			nonZero++
		}
	}
	assert.Equal(t, nonZero, lines)
	assert.Less(t, lines, len(prog.Moves()), "zero-length sweeps must be skipped")

	d, err := dxf.Open(path)
	require.NoError(t, err)
	assert.Len(t, d.Entities(), lines)
}

func TestExportToolpathDXF_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	_, err := ExportToolpathDXF(path, gcode.Program{})
	assert.Error(t, err)
}

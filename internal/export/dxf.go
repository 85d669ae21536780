package export

import (
	"fmt"

	"github.com/piwi3910/facer/internal/gcode"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
)

// DXF layer names used for toolpath export.
const (
	LayerCut   = "CUT"
	LayerRapid = "RAPID"
)

// ExportToolpathDXF writes the program's moves as 3D lines, cutting moves on
// the CUT layer and rapids on the RAPID layer. Zero-length moves are skipped.
// It returns the number of lines written.
func ExportToolpathDXF(path string, prog gcode.Program) (int, error) {
	moves := prog.Moves()
	if len(moves) == 0 {
		return 0, fmt.Errorf("no toolpath to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerRapid, color.Red, table.LT_HIDDEN, false); err != nil {
		return 0, fmt.Errorf("failed to add layer %s: %w", LayerRapid, err)
	}
	if _, err := d.AddLayer(LayerCut, color.Cyan, table.LT_CONTINUOUS, false); err != nil {
		return 0, fmt.Errorf("failed to add layer %s: %w", LayerCut, err)
	}

	current := ""
	lines := 0
	for _, m := range moves {
		if m.FromX == m.ToX && m.FromY == m.ToY && m.FromZ == m.ToZ {
			continue
		}
		layer := LayerRapid
		if m.Type == gcode.MoveFeed || m.Type == gcode.MovePlunge {
			layer = LayerCut
		}
		if layer != current {
			if err := d.ChangeLayer(layer); err != nil {
				return lines, err
			}
			current = layer
		}
		if _, err := d.Line(m.FromX, m.FromY, m.FromZ, m.ToX, m.ToY, m.ToZ); err != nil {
			return lines, err
		}
		lines++
	}

	if err := d.SaveAs(path); err != nil {
		return lines, fmt.Errorf("failed to save DXF: %w", err)
	}
	return lines, nil
}

package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/facer/internal/export"
)

// formatCell renders one feeds table value.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatNumber(x)
	default:
		return fmt.Sprint(x)
	}
}

// feedsTableCells returns the header and rows of the material comparison
// for the current tool.
func (a *App) feedsTableCells() ([][]string, error) {
	rows, err := export.ChartRows(a.catalog, a.job.Parameters)
	if err != nil {
		return nil, err
	}
	cells := [][]string{export.ChartHeader}
	for _, row := range rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = formatCell(v)
		}
		cells = append(cells, line)
	}
	return cells, nil
}

// showFeedsTable compares every catalog material for the current tool and
// depths. Selecting a row switches the job to that material.
func (a *App) showFeedsTable() {
	cells, err := a.feedsTableCells()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	table := widget.NewTable(
		func() (int, int) { return len(cells), len(export.ChartHeader) },
		func() fyne.CanvasObject { return widget.NewLabel("000000.000") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			l := obj.(*widget.Label)
			l.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			l.SetText(cells[id.Row][id.Col])
		},
	)
	table.SetColumnWidth(0, 200)
	for col := 1; col < len(export.ChartHeader); col++ {
		table.SetColumnWidth(col, 110)
	}

	var d dialog.Dialog
	table.OnSelected = func(id widget.TableCellID) {
		if id.Row == 0 {
			return
		}
		material := cells[id.Row][0]
		a.form.material.SetSelected(material)
		d.Hide()
	}

	p := a.job.Parameters
	subtitle := widget.NewLabel(fmt.Sprintf("Tool %g in, %d flutes, axial %g in, radial %g in. Select a row to use that material.",
		p.ToolDiameter, p.Flutes, p.AxialDepth, p.RadialDepth))
	exportBtn := widget.NewButtonWithIcon("Export to Excel...", theme.DocumentSaveIcon(), a.exportFeedsChart)

	content := container.NewBorder(
		container.NewBorder(nil, nil, nil, exportBtn, subtitle),
		nil, nil, nil,
		table,
	)
	d = dialog.NewCustom("Feeds Table", "Close", content, a.window)
	d.Resize(fyne.NewSize(1100, 560))
	d.Show()
}

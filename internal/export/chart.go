package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/facer/internal/model"
	"github.com/xuri/excelize/v2"
)

const chartSheet = "Feeds and Speeds"

// ChartHeader is the header row of the feeds and speeds workbook.
var ChartHeader = []string{
	"Material", "SFM", "UHP", "RPM",
	"IPT Min", "IPT Max",
	"Feed Min (in/min)", "Feed Max (in/min)",
	"MRR Min (in^3/min)", "MRR Max (in^3/min)",
	"HP Min", "HP Max",
}

// ChartRows computes one row per catalog material for the tool and depths in params.
func ChartRows(catalog *model.Catalog, params model.CuttingParameters) ([][]interface{}, error) {
	var rows [][]interface{}
	for _, name := range catalog.Names() {
		d, err := params.Derive(catalog, name)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", name, err)
		}
		rows = append(rows, []interface{}{
			d.Material, d.SurfaceFeetPerMinute, d.UnitHorsepower, round(d.SpindleRPM, 0),
			d.FeedPerTooth.Min, d.FeedPerTooth.Max,
			round(d.FeedRate.Min, 1), round(d.FeedRate.Max, 1),
			round(d.MaterialRemovalRate.Min, 3), round(d.MaterialRemovalRate.Max, 3),
			round(d.Horsepower.Min, 3), round(d.Horsepower.Max, 3),
		})
	}
	return rows, nil
}

// ExportFeedsChart writes an Excel workbook tabulating the feeds and speeds of
// every catalog material for one tool setup, with a spindle RPM bar chart.
func ExportFeedsChart(path string, catalog *model.Catalog, params model.CuttingParameters) error {
	if catalog == nil || catalog.Len() == 0 {
		return fmt.Errorf("no materials to chart")
	}
	rows, err := ChartRows(catalog, params)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), chartSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(ChartHeader))
	for i, h := range ChartHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(chartSheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(chartSheet, cell, &row); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(ChartHeader), 1)
	if err := f.SetCellStyle(chartSheet, "A1", lastHeader, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(chartSheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(chartSheet, "B", "L", 14); err != nil {
		return err
	}

	// Tool setup block under the table
	setupRow := len(rows) + 3
	setup := [][]interface{}{
		{"Tool diameter (in)", params.ToolDiameter},
		{"Flutes", params.Flutes},
		{"Axial DOC (in)", params.AxialDepth},
		{"Radial DOC (in)", params.RadialDepth},
	}
	for i, row := range setup {
		cell, _ := excelize.CoordinatesToCellName(1, setupRow+i)
		if err := f.SetSheetRow(chartSheet, cell, &row); err != nil {
			return err
		}
	}

	last := len(rows) + 1
	ref := fmt.Sprintf("'%s'!", chartSheet)
	if err := f.AddChart(chartSheet, "N2", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       ref + "$D$1",
			Categories: fmt.Sprintf("%s$A$2:$A$%d", ref, last),
			Values:     fmt.Sprintf("%s$D$2:$D$%d", ref, last),
		}},
		Title: []excelize.RichTextRun{{Text: "Spindle RPM"}},
	}); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}

	return f.SaveAs(path)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

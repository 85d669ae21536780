package export

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/piwi3910/facer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestChartRows(t *testing.T) {
	catalog := model.DefaultCatalog()
	rows, err := ChartRows(catalog, model.DefaultParameters())
	require.NoError(t, err)
	require.Len(t, rows, catalog.Len())

	for _, row := range rows {
		assert.Len(t, row, len(ChartHeader))
	}
	assert.Equal(t, catalog.Names()[0], rows[0][0])
}

func TestChartRows_InvalidTool(t *testing.T) {
	params := model.DefaultParameters()
	params.ToolDiameter = 0
	_, err := ChartRows(model.DefaultCatalog(), params)
	assert.ErrorIs(t, err, model.ErrToolDiameter)
}

func TestExportFeedsChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.xlsx")
	catalog := model.DefaultCatalog()
	params := model.DefaultParameters()

	require.NoError(t, ExportFeedsChart(path, catalog, params))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(chartSheet)
	require.NoError(t, err)
	require.Greater(t, len(rows), catalog.Len())
	assert.Equal(t, ChartHeader, rows[0])

	d, err := params.Derive(catalog, model.DefaultMaterialName)
	require.NoError(t, err)

	var found bool
	for _, row := range rows[1 : catalog.Len()+1] {
		if row[0] == model.DefaultMaterialName {
			found = true
			assert.Equal(t, strconv.Itoa(int(round(d.SpindleRPM, 0))), row[3])
		}
	}
	assert.True(t, found, "material %q not in workbook", model.DefaultMaterialName)
}

func TestExportFeedsChart_EmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.xlsx")
	assert.Error(t, ExportFeedsChart(path, nil, model.DefaultParameters()))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1374.0, round(1374.4677, 0))
	assert.Equal(t, 8.2, round(8.246, 1))
	assert.Equal(t, 0.198, round(0.19844, 3))
}

// Package importer provides CSV and Excel import of material catalogs and
// DXF import of facing boundaries. It supports automatic delimiter detection,
// flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/facer/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a catalog import operation.
type ImportResult struct {
	Materials []model.MaterialProperty
	Errors    []string
	Warnings  []string
}

// Catalog builds an immutable catalog from the imported materials.
func (r ImportResult) Catalog() (*model.Catalog, error) {
	if len(r.Materials) == 0 {
		return nil, fmt.Errorf("%w: no materials imported", model.ErrMaterial)
	}
	return model.NewCatalog(r.Materials)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name   int
	SFM    int
	UHP    int
	IPTMin int
	IPTMax int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":    {"name", "material", "mtl", "label", "description"},
	"sfm":     {"sfm", "surface speed", "surface feet per minute", "surface ft/min", "speed"},
	"uhp":     {"uhp", "unit hp", "unit horsepower", "unit-hp", "k"},
	"ipt_min": {"ipt min", "min ipt", "chip load min", "min chip load", "feed per tooth min", "fpt min", "intooth min"},
	"ipt_max": {"ipt max", "max ipt", "chip load max", "max chip load", "feed per tooth max", "fpt max", "intooth max"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (Name, SFM, UHP, IPT min, IPT max) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, SFM: -1, UHP: -1, IPTMin: -1, IPTMax: -1}
	slots := map[string]*int{
		"name":    &mapping.Name,
		"sfm":     &mapping.SFM,
		"uhp":     &mapping.UHP,
		"ipt_min": &mapping.IPTMin,
		"ipt_max": &mapping.IPTMax,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, SFM: 1, UHP: 2, IPTMin: 3, IPTMax: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber parses a required numeric cell.
func parseNumber(row []string, idx int, rowLabel, column string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, column)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	return v, ""
}

// parseRow extracts a MaterialProperty from a row using the given column mapping.
// Returns the material, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.MaterialProperty, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		return model.MaterialProperty{}, fmt.Sprintf("%s: Missing material name", rowLabel), ""
	}

	sfm, errMsg := parseNumber(row, mapping.SFM, rowLabel, "SFM")
	if errMsg != "" {
		return model.MaterialProperty{}, errMsg, ""
	}
	uhp, errMsg := parseNumber(row, mapping.UHP, rowLabel, "UHP")
	if errMsg != "" {
		return model.MaterialProperty{}, errMsg, ""
	}

	m := model.MaterialProperty{
		Name:                 name,
		SurfaceFeetPerMinute: sfm,
		UnitHorsepower:       uhp,
		FeedPerTooth:         model.DefaultFeedPerTooth(),
	}

	// Optional chip load range
	var warning string
	if getCell(row, mapping.IPTMin) == "" && getCell(row, mapping.IPTMax) == "" {
		warning = fmt.Sprintf("%s: No chip load for %s, using %g ... %g",
			rowLabel, name, m.FeedPerTooth.Min, m.FeedPerTooth.Max)
	} else {
		if m.FeedPerTooth.Min, errMsg = parseNumber(row, mapping.IPTMin, rowLabel, "IPT min"); errMsg != "" {
			return model.MaterialProperty{}, errMsg, ""
		}
		if m.FeedPerTooth.Max, errMsg = parseNumber(row, mapping.IPTMax, rowLabel, "IPT max"); errMsg != "" {
			return model.MaterialProperty{}, errMsg, ""
		}
	}

	if err := m.Validate(); err != nil {
		return model.MaterialProperty{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	return m, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import loads a catalog file, choosing the reader by extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports materials from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports materials from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	return csvReader.ReadAll()
}

// ImportExcel imports materials from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a material.
// A repeated material name keeps the first definition.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Name == -1 {
			missing = append(missing, "Name")
		}
		if mapping.SFM == -1 {
			missing = append(missing, "SFM")
		}
		if mapping.UHP == -1 {
			missing = append(missing, "UHP")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// An unrecognized header still has a non-numeric SFM column
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := map[string]bool{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		m, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if seen[m.Name] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate material '%s' ignored", rowLabel, m.Name))
			continue
		}
		seen[m.Name] = true

		result.Materials = append(result.Materials, m)
	}

	return result
}

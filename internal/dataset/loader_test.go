package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "edacli/internal/errors"
	"edacli/internal/files"
)

const housingCSV = `bedrooms,bathrooms,area
3,2,1500
4,,2100
2,1,NA
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T, path string, sheets map[string][][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if name != "Sheet1" {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "housing.csv", housingCSV)

	df, err := Load(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"bedrooms", "bathrooms", "area"}, df.Names())
	assert.Equal(t, 3, df.Nrow())
	assert.Equal(t, series.Int, df.Col("bedrooms").Type())
	assert.Equal(t, []bool{false, true, false}, df.Col("bathrooms").IsNaN())
	assert.Equal(t, []bool{false, false, true}, df.Col("area").IsNaN())
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "records.json", `[
		{"price": 10.5, "city": "Basra"},
		{"price": null, "city": "Erbil"},
		{"city": "Mosul"}
	]`)

	df, err := Load(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "price"}, df.Names())
	assert.Equal(t, series.Float, df.Col("price").Type())
	assert.Equal(t, []bool{false, true, true}, df.Col("price").IsNaN())
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeWorkbook(t, path, map[string][][]interface{}{
		"Sheet1": {
			{"bedrooms", "area", "note"},
			{3, 1500, "ok"},
			{4, nil},
			{},
			{2, 900, "small"},
		},
		"Other": {
			{"x"},
			{1},
		},
	})

	df, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"bedrooms", "area", "note"}, df.Names())
	assert.Equal(t, 3, df.Nrow())
	assert.Equal(t, []bool{false, true, false}, df.Col("area").IsNaN())
	assert.Equal(t, []bool{false, true, false}, df.Col("note").IsNaN())

	other, err := Load(path, LoadOptions{Sheet: "Other"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, other.Names())

	_, err = Load(path, LoadOptions{Sheet: "Nope"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{"missing file", filepath.Join(dir, "absent.csv"), apperrors.ErrTypeNotFound},
		{"unsupported extension", writeFile(t, dir, "notes.txt", "a"), apperrors.ErrTypeValidation},
		{"empty csv", writeFile(t, dir, "empty.csv", ""), apperrors.ErrTypeParsing},
		{"malformed json", writeFile(t, dir, "bad.json", "{not json"), apperrors.ErrTypeParsing},
		{"corrupt workbook", writeFile(t, dir, "bad.xlsx", "not a zip"), apperrors.ErrTypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, LoadOptions{})
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader("a\n1\n"), files.Format("parquet"), LoadOptions{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

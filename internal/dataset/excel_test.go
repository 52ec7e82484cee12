package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a minimal survey-shaped workbook with the given
// number of preamble rows above the header.
func writeWorkbook(t *testing.T, preamble int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	row := 1
	for i := 0; i < preamble; i++ {
		require.NoError(t, f.SetSheetRow(sheet, cell(row), &[]string{"survey preamble"}))
		row++
	}
	require.NoError(t, f.SetSheetRow(sheet, cell(row), &[]string{"Name", "Aware of Fair Fares"}))
	row++
	for _, data := range [][]string{{"alice", "Yes"}, {"bob", "No"}, {"carol", ""}} {
		require.NoError(t, f.SetSheetRow(sheet, cell(row), &data))
		row++
	}

	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func cell(row int) string {
	name, _ := excelize.CoordinatesToCellName(1, row)
	return name
}

func TestLoadExcel(t *testing.T) {
	path := writeWorkbook(t, 2)

	d, err := LoadExcel(path, LoadOptions{SkipRows: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, d.RowCount())
	col, err := d.Column(ByName("Aware of Fair Fares"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No", ""}, col)
}

func TestLoadExcelMissingFile(t *testing.T) {
	_, err := LoadExcel(filepath.Join(t.TempDir(), "nope.xlsx"), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestLoadExcelUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, 0)

	_, err := LoadExcel(path, LoadOptions{Sheet: "Responses"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	err := f.Save(path)
	require.NoError(t, err)
	return path
}

func TestReadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"name", "address", "city"},
			{"Carrefour City", "10 Rue de Rivoli", "Paris"},
			{"Monoprix", "12 Quai de Rive Neuve", "Marseille"},
		},
	})

	inputs, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "Carrefour City", inputs[0].Name)
	assert.Equal(t, "10 Rue de Rivoli", inputs[0].Addr)
	assert.Equal(t, "Marseille", inputs[1].City)
}

func TestReadXLSX_SkipRows(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"Export du 2024-01-15"},
			{"name", "city"},
			{"Carrefour City", "Paris"},
		},
	})

	inputs, err := ReadXLSX(path, XLSXOptions{SkipRows: 1})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Carrefour City", inputs[0].Name)
	assert.Equal(t, "Paris", inputs[0].City)
}

func TestReadXLSX_SheetName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Summary": {{"nothing", "useful"}},
		"Stores":  {{"name", "city"}, {"Monoprix", "Marseille"}},
	})

	inputs, err := ReadXLSX(path, XLSXOptions{SheetName: "Stores"})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Monoprix", inputs[0].Name)
}

func TestReadXLSX_SheetNameNotFound(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"name"}},
	})

	_, err := ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"name"}},
	})

	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadXLSX_EmptySheet(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {},
	})

	_, err := ReadXLSX(path, XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty input")
}

func TestReadXLSX_CustomColumns(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"libelle", "cp"},
			{"Carrefour City", "75004"},
		},
	})

	inputs, err := ReadXLSX(path, XLSXOptions{
		Columns: Columns{Name: "libelle", PostalCode: "cp"},
	})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Carrefour City", inputs[0].Name)
	assert.Equal(t, "75004", inputs[0].PostalCode)
}

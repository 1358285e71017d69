package dataset

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int     // default 0
	SheetName  string  // if set, overrides SheetIndex
	SkipRows   int     // leading rows to discard before the header
	Columns    Columns // zero value falls back to DefaultColumns
}

// ReadXLSX parses a worksheet. After SkipRows leading rows, the next
// row is the header and every following row becomes one Input.
func ReadXLSX(path string, opts XLSXOptions) ([]Input, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) <= opts.SkipRows {
		return nil, eris.New("dataset: empty input")
	}

	cols := opts.Columns
	if cols == (Columns{}) {
		cols = DefaultColumns()
	}
	header := rowToStrings(sheet.Rows[opts.SkipRows])
	idx, err := resolveColumns(header, cols)
	if err != nil {
		return nil, err
	}

	var inputs []Input
	for _, row := range sheet.Rows[opts.SkipRows+1:] {
		inputs = append(inputs, rowToInput(rowToStrings(row), idx))
	}
	return inputs, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("dataset: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("dataset: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

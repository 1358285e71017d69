package dataset

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// CSVOptions configures the CSV reader.
type CSVOptions struct {
	Delimiter  rune    // default ','
	Charset    string  // IANA name such as "windows-1252"; empty means UTF-8
	Comment    rune    // comment character (0 = none)
	LazyQuotes bool
	Columns    Columns // zero value falls back to DefaultColumns
}

// ReadCSV parses a CSV dataset. The first row is the header; the
// configured columns are resolved against it and every following row
// becomes one Input. French address exports are frequently latin-1 or
// windows-1252, so a charset can be named and is decoded through the
// HTML encoding index.
func ReadCSV(ctx context.Context, r io.Reader, opts CSVOptions) ([]Input, error) {
	decoded, err := charsetReader(r, opts.Charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("dataset: empty input")
	}
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read header")
	}

	cols := opts.Columns
	if cols == (Columns{}) {
		cols = DefaultColumns()
	}
	idx, err := resolveColumns(header, cols)
	if err != nil {
		return nil, err
	}

	var inputs []Input
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: read cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			return inputs, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "dataset: read row")
		}
		inputs = append(inputs, rowToInput(row, idx))
	}
}

// charsetReader wraps r with a decoder for the named charset.
func charsetReader(r io.Reader, charset string) (io.Reader, error) {
	if charset == "" {
		return r, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(r), nil
}

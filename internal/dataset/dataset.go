// Package dataset reads batch geocoding inputs from CSV and XLSX sources
// and writes resolved records back out as CSV.
package dataset

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jvigneron-hub/gistools/pkg/place"
)

// Input is one dataset row resolved into the fields the matching
// pipeline scores against.
type Input struct {
	ID         string
	Query      string
	Name       string
	Addr       string
	City       string
	PostalCode string
	Country    string
}

// Hints converts the row into pipeline hints.
func (in Input) Hints() place.Hints {
	return place.Hints{
		Text:       in.Query,
		Name:       in.Name,
		Address:    in.Addr,
		City:       in.City,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	}
}

// Empty reports whether the row carries nothing to resolve.
func (in Input) Empty() bool {
	return in.Query == "" && in.Name == "" && in.Addr == "" && in.City == ""
}

// Columns names the header columns that feed each Input field. Empty
// entries are not looked up. Header matching is case-insensitive.
type Columns struct {
	ID         string
	Query      string
	Name       string
	Addr       string
	City       string
	PostalCode string
	Country    string
}

// DefaultColumns matches the header written by WriteCSV, so a produced
// dataset can be fed back in unchanged.
func DefaultColumns() Columns {
	return Columns{
		ID:         "id",
		Query:      "query",
		Name:       "name",
		Addr:       "address",
		City:       "city",
		PostalCode: "postal_code",
		Country:    "country",
	}
}

// columnIndex holds the resolved position of each column, -1 when the
// header does not carry it.
type columnIndex struct {
	id, query, name, addr, city, postal, country int
}

// resolveColumns locates the configured columns in a header row. At
// least one of query, name, or address must be present.
func resolveColumns(header []string, cols Columns) (columnIndex, error) {
	lookup := make(map[string]int, len(header))
	for i, h := range header {
		lookup[strings.ToLower(strings.TrimSpace(h))] = i
	}
	find := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := lookup[strings.ToLower(name)]; ok {
			return i
		}
		return -1
	}

	idx := columnIndex{
		id:      find(cols.ID),
		query:   find(cols.Query),
		name:    find(cols.Name),
		addr:    find(cols.Addr),
		city:    find(cols.City),
		postal:  find(cols.PostalCode),
		country: find(cols.Country),
	}
	if idx.query < 0 && idx.name < 0 && idx.addr < 0 {
		return idx, eris.Errorf(
			"dataset: header %v has none of the query, name, or address columns", header)
	}
	return idx, nil
}

// rowToInput picks the mapped cells out of a row. Short rows yield
// empty fields rather than errors.
func rowToInput(row []string, idx columnIndex) Input {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return Input{
		ID:         cell(idx.id),
		Query:      cell(idx.query),
		Name:       cell(idx.name),
		Addr:       cell(idx.addr),
		City:       cell(idx.city),
		PostalCode: cell(idx.postal),
		Country:    cell(idx.country),
	}
}

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns_CaseInsensitive(t *testing.T) {
	header := []string{"ID", "Query", "NAME", "Address", "city", "Postal_Code", "Country"}
	idx, err := resolveColumns(header, DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 0, idx.id)
	assert.Equal(t, 1, idx.query)
	assert.Equal(t, 2, idx.name)
	assert.Equal(t, 3, idx.addr)
	assert.Equal(t, 4, idx.city)
	assert.Equal(t, 5, idx.postal)
	assert.Equal(t, 6, idx.country)
}

func TestResolveColumns_PartialHeader(t *testing.T) {
	header := []string{"name", "city"}
	idx, err := resolveColumns(header, DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 0, idx.name)
	assert.Equal(t, 1, idx.city)
	assert.Equal(t, -1, idx.query)
	assert.Equal(t, -1, idx.addr)
	assert.Equal(t, -1, idx.postal)
}

func TestResolveColumns_NoUsableColumns(t *testing.T) {
	header := []string{"siret", "revenue", "employees"}
	_, err := resolveColumns(header, DefaultColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the query, name, or address columns")
}

func TestResolveColumns_CustomNames(t *testing.T) {
	header := []string{"libelle", "adresse", "ville", "cp"}
	cols := Columns{
		Name:       "libelle",
		Addr:       "adresse",
		City:       "ville",
		PostalCode: "cp",
	}
	idx, err := resolveColumns(header, cols)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.name)
	assert.Equal(t, 1, idx.addr)
	assert.Equal(t, 2, idx.city)
	assert.Equal(t, 3, idx.postal)
	assert.Equal(t, -1, idx.id)
}

func TestRowToInput_ShortRow(t *testing.T) {
	header := []string{"query", "city", "postal_code"}
	idx, err := resolveColumns(header, DefaultColumns())
	require.NoError(t, err)

	in := rowToInput([]string{"carrefour rivoli"}, idx)
	assert.Equal(t, "carrefour rivoli", in.Query)
	assert.Empty(t, in.City)
	assert.Empty(t, in.PostalCode)
}

func TestInput_Hints(t *testing.T) {
	in := Input{
		Query:      "carrefour city rivoli",
		Name:       "Carrefour City",
		Addr:       "10 Rue de Rivoli",
		City:       "Paris",
		PostalCode: "75004",
		Country:    "France",
	}
	h := in.Hints()
	assert.Equal(t, "carrefour city rivoli", h.Text)
	assert.Equal(t, "Carrefour City", h.Name)
	assert.Equal(t, "10 Rue de Rivoli", h.Address)
	assert.Equal(t, "Paris", h.City)
	assert.Equal(t, "75004", h.PostalCode)
	assert.Equal(t, "France", h.Country)
}

func TestInput_Empty(t *testing.T) {
	assert.True(t, Input{PostalCode: "75004", Country: "France"}.Empty())
	assert.False(t, Input{Query: "carrefour"}.Empty())
	assert.False(t, Input{Addr: "10 Rue de Rivoli"}.Empty())
}

package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareWith(t *testing.T) {
	p := newTestPlace(t)
	rec := p.Record()
	rec.FormattedAddress = "10 Rue de Rivoli, 75004 Paris, France"
	rec.PlaceName = "Carrefour City"
	rec.Address = "10 Rue de Rivoli"
	rec.City = "Paris"
	rec.Country = "France"

	p.CompareWith(Hints{
		Text:    "10 rue de rivoli paris",
		Name:    "carrefour city",
		Address: "10 rue de rivoli",
		City:    "paris",
		Country: "france",
	}, true)

	assert.InDelta(t, 1.0, rec.Confidence, 0.01)
	assert.InDelta(t, 1.0, rec.ConfidenceOnName, 0.01)
	assert.InDelta(t, 1.0, rec.ConfidenceOnAddr, 0.01)
	assert.InDelta(t, 1.0, rec.ConfidenceOnCity, 0.01)
	assert.InDelta(t, 1.0, rec.ConfidenceOnCountry, 0.01)
}

func TestCompareWith_EmptySidesKeepScores(t *testing.T) {
	p := newTestPlace(t)
	rec := p.Record()
	rec.City = "Paris"
	rec.ConfidenceOnName = 0.42
	rec.ConfidenceOnCity = 0.42

	// Name is hinted but unresolved; city is resolved but not hinted.
	p.CompareWith(Hints{Name: "Carrefour"}, false)

	assert.Equal(t, 0.42, rec.ConfidenceOnName)
	assert.Equal(t, 0.42, rec.ConfidenceOnCity)
}

package place

import (
	"math"
	"strconv"
	"strings"

	"github.com/jvigneron-hub/gistools/pkg/strsim"
)

// Hints are the caller-supplied reference values a resolved record is
// scored against. Text doubles as the free-text query handed to the
// search strategies. The JSON keys match the request payloads of the
// HTTP API.
type Hints struct {
	Text       string `json:"input_text,omitempty"`
	Name       string `json:"name,omitempty"`
	Address    string `json:"input_address,omitempty"`
	City       string `json:"input_city,omitempty"`
	PostalCode string `json:"input_postal_code,omitempty"`
	Country    string `json:"input_country,omitempty"`
}

// scoreRecord fills the hint-vs-result confidence fields and the
// accuracy rank. Name and country use the subsequence-based score,
// street and city the plain edit ratio; the city score takes the best
// of city and sub-locality.
func (p *Place) scoreRecord(rec *Record) {
	h := p.hints

	if h.Name != "" {
		rec.ConfidenceOnName = round2(strsim.Similarity(h.Name, rec.PlaceName, true))
	}
	if h.Address != "" {
		rec.ConfidenceOnAddr = round2(strsim.Similarity(h.Address, rec.Address, false))
	}
	if h.City != "" {
		city := strsim.Similarity(h.City, rec.City, false)
		sub := strsim.Similarity(h.City, rec.SubLocality, false)
		rec.ConfidenceOnCity = round2(math.Max(city, sub))
	}
	rec.ConfidenceOnPostalCode = confidenceOnPostalCode(h.PostalCode, rec.PostalCode)
	if h.Country != "" {
		rec.ConfidenceOnCountry = round2(strsim.Similarity(h.Country, rec.Country, true))
	}

	rec.LocationAccuracy = accuracyOf(rec.LocationType)
}

// confidenceOnPostalCode is binary: a missing hint accepts anything,
// otherwise both sides must parse as the same integer.
func confidenceOnPostalCode(hint, got string) float64 {
	if hint == "" {
		return 1
	}
	a, errA := strconv.Atoi(strings.TrimSpace(hint))
	b, errB := strconv.Atoi(strings.TrimSpace(got))
	if errA == nil && errB == nil && a == b {
		return 1
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

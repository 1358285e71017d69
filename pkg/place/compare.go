package place

import "github.com/jvigneron-hub/gistools/pkg/strsim"

// CompareWith rescores the record's confidence fields against a
// different set of hints: query text against the formatted address,
// then name, street address, city and country against their resolved
// counterparts. A dimension is scored only when both sides are
// non-empty; the others keep their current value.
func (p *Place) CompareWith(h Hints, lcs bool) {
	rec := p.record
	pairs := []struct {
		hint, got string
		out       *float64
	}{
		{h.Text, rec.FormattedAddress, &rec.Confidence},
		{h.Name, rec.PlaceName, &rec.ConfidenceOnName},
		{h.Address, rec.Address, &rec.ConfidenceOnAddr},
		{h.City, rec.City, &rec.ConfidenceOnCity},
		{h.Country, rec.Country, &rec.ConfidenceOnCountry},
	}
	for _, pair := range pairs {
		if pair.hint != "" && pair.got != "" {
			*pair.out = round2(strsim.Similarity(pair.hint, pair.got, lcs))
		}
	}
}

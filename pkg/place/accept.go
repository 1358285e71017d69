package place

import "strings"

// Check applies the acceptance rules to the current record and stores
// the verdict on it. In order: every component constraint must match
// its record field case-insensitively; then the postal and city rules
// must not both fail (postal compares two-digit prefixes before the
// confidence, and only fires when both sides carry a postal code);
// then the street, overall-confidence and location-accuracy gates each
// reject on their own. A zero threshold disables its rule.
func (p *Place) Check() bool {
	rec := p.record
	accepted := true

	for k, v := range p.components {
		got, ok := recordField(rec, k)
		if !ok || !strings.EqualFold(got, v) {
			accepted = false
			break
		}
	}

	if accepted {
		acceptPostal, acceptCity := true, true

		if p.thresholds.PostalCode > 0 {
			s1, s2 := p.hints.PostalCode, rec.PostalCode
			if s1 != "" && s2 != "" {
				if prefix2(s1) != prefix2(s2) {
					acceptPostal = false
				} else if rec.ConfidenceOnPostalCode < p.thresholds.PostalCode {
					acceptPostal = false
				}
			}
		}
		if p.thresholds.City > 0 && rec.ConfidenceOnCity < p.thresholds.City {
			acceptCity = false
		}

		accepted = acceptPostal || acceptCity
	}

	if accepted && p.thresholds.Addr > 0 && rec.ConfidenceOnAddr < p.thresholds.Addr {
		accepted = false
	}
	if accepted && p.thresholds.Overall > 0 && rec.Confidence < p.thresholds.Overall {
		accepted = false
	}
	if accepted && rec.LocationAccuracy <= 1 {
		accepted = false
	}

	rec.Accepted = accepted
	return accepted
}

// IsBetter reports whether this resolution should replace other when
// merging competing candidates. A nil other never wins, and an
// accepted record beats a rejected one outright. Otherwise each gated
// dimension where this record scores strictly lower demotes it, as
// does a lower location accuracy; at street-level accuracy a higher
// overall confidence without an accuracy gain also demotes.
func (p *Place) IsBetter(other *Place) bool {
	if other == nil {
		return true
	}
	a, b := p.record, other.record
	if a.Accepted && !b.Accepted {
		return true
	}

	better := true
	if p.thresholds.PostalCode > 0 && a.ConfidenceOnPostalCode < b.ConfidenceOnPostalCode {
		better = false
	}
	if p.thresholds.City > 0 && a.ConfidenceOnCity < b.ConfidenceOnCity {
		better = false
	}
	if a.LocationAccuracy < b.LocationAccuracy {
		better = false
	}
	if a.LocationAccuracy > 1 {
		if p.thresholds.Addr > 0 && a.ConfidenceOnAddr < b.ConfidenceOnAddr {
			better = false
		}
		if p.thresholds.Name > 0 && a.ConfidenceOnName < b.ConfidenceOnName {
			better = false
		}
		if p.thresholds.Overall > 0 && a.Confidence > b.Confidence && a.LocationAccuracy <= b.LocationAccuracy {
			better = false
		}
	}
	return better
}

// recordField resolves a component constraint key, as used in the
// geocoder's component filters, to the matching record value.
func recordField(rec *Record, key string) (string, bool) {
	switch key {
	case "country":
		return rec.Country, true
	case "country_code":
		return rec.CountryCode, true
	case "postal_code":
		return rec.PostalCode, true
	case "locality", "city":
		return rec.City, true
	case "administrative_area":
		return rec.AdminAreaLevel1, true
	default:
		return "", false
	}
}

func prefix2(s string) string {
	if len(s) > 2 {
		return s[:2]
	}
	return s
}

package place

import (
	"fmt"
	"io"
	"strings"
)

// Describe writes a human-readable summary of the resolution. The
// short form covers identification and position; all adds the full
// address, confidence and contact breakdown.
func (p *Place) Describe(w io.Writer, all bool) {
	rec := p.record

	if !all {
		fmt.Fprintln(w, "id:                       ", p.id)
		fmt.Fprintln(w, "input text:               ", p.hints.Text)
		fmt.Fprintln(w, "place name:               ", rec.PlaceName)
		fmt.Fprintln(w, "place type:               ", strings.Join(rec.PlaceTypes, ", "))
		fmt.Fprintln(w, "Maps URL:                 ", rec.MapsURL)
		fmt.Fprintln(w, "formatted address:        ", rec.FormattedAddress)
		fmt.Fprintln(w, "longitude:                ", fmt.Sprintf("%.6f", rec.Longitude))
		fmt.Fprintln(w, "latitude:                 ", fmt.Sprintf("%.6f", rec.Latitude))
		fmt.Fprintln(w, "confidence:               ", fmt.Sprintf("%.2f", rec.Confidence))
		fmt.Fprintln(w, "location type:            ", rec.LocationType)
	} else {
		fmt.Fprintln(w, "id:                       ", p.id)
		fmt.Fprintln(w, "name:                     ", p.hints.Name)
		fmt.Fprintln(w, "input text:               ", p.hints.Text)
		fmt.Fprintln(w, "geocoder:                 ", rec.APIUsed)
		fmt.Fprintln(w, "place ID:                 ", rec.PlaceID)
		fmt.Fprintln(w, "place name:               ", rec.PlaceName)
		fmt.Fprintln(w, "place type:               ", strings.Join(rec.PlaceTypes, ", "))
		fmt.Fprintln(w, "place main type:          ", rec.PlaceMainType)
		fmt.Fprintln(w, "Maps URL:                 ", rec.MapsURL)
		fmt.Fprintln(w, "place URL:                ", rec.PlaceURL)
		fmt.Fprintln(w, "website:                  ", rec.Website)
		fmt.Fprintln(w, "brand:                    ", rec.PlaceBrand)
		fmt.Fprintln(w, "formatted address:        ", rec.FormattedAddress)
		fmt.Fprintln(w, "address:                  ", rec.Address)
		fmt.Fprintln(w, "postal code:              ", rec.PostalCode)
		fmt.Fprintln(w, "city:                     ", rec.City)
		fmt.Fprintln(w, "longitude:                ", fmt.Sprintf("%.6f", rec.Longitude))
		fmt.Fprintln(w, "latitude:                 ", fmt.Sprintf("%.6f", rec.Latitude))
		fmt.Fprintln(w, "plus code:                ", rec.PlusCode)
		fmt.Fprintln(w, "confidence:               ", fmt.Sprintf("%.2f", rec.Confidence))
		fmt.Fprintln(w, "confidence on name:       ", fmt.Sprintf("%.2f", rec.ConfidenceOnName))
		fmt.Fprintln(w, "confidence on addr:       ", fmt.Sprintf("%.2f", rec.ConfidenceOnAddr))
		fmt.Fprintln(w, "confidence on city:       ", fmt.Sprintf("%.2f", rec.ConfidenceOnCity))
		fmt.Fprintln(w, "confidence on postal code:", fmt.Sprintf("%.0f", rec.ConfidenceOnPostalCode))
		fmt.Fprintln(w, "confidence on country:    ", fmt.Sprintf("%.2f", rec.ConfidenceOnCountry))
		fmt.Fprintln(w, "location type:            ", rec.LocationType)
		fmt.Fprintln(w, "location accuracy:        ", rec.LocationAccuracy)
		fmt.Fprintln(w, "accepted:                 ", rec.Accepted)
	}

	if rec.Distance != nil {
		fmt.Fprintln(w, "distance:                 ", fmt.Sprintf("%.2f km", *rec.Distance))
	}

	fmt.Fprintln(w)
}

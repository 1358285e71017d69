package place

import (
	"slices"
	"strings"

	olc "github.com/google/open-location-code/go"

	"github.com/jvigneron-hub/gistools/pkg/gmaps"
	"github.com/jvigneron-hub/gistools/pkg/strsim"
)

// BestGeocodeCandidate scans geocode results for the formatted address
// most similar to the input text. It returns the winning index, the
// formatted address and the similarity rounded to two decimals; the
// index is -1 when nothing scores above zero.
func BestGeocodeCandidate(input string, results []gmaps.GeocodeResult) (int, string, float64) {
	best := -1
	ratio := 0.0
	formatted := ""
	for k, res := range results {
		cf := strsim.Similarity(input, res.FormattedAddress, true)
		if cf > ratio {
			ratio = cf
			best = k
			formatted = res.FormattedAddress
		}
	}
	return best, formatted, round2(ratio)
}

// BestPlaceCandidate is BestGeocodeCandidate over a place list; entries
// without a formatted address are scored on their vicinity instead.
func BestPlaceCandidate(input string, places []gmaps.PlaceResult) (int, string, float64) {
	best := -1
	ratio := 0.0
	formatted := ""
	for k, p := range places {
		addr := p.FormattedAddress
		if addr == "" {
			addr = p.Vicinity
		}
		cf := strsim.Similarity(input, addr, true)
		if cf > ratio {
			ratio = cf
			best = k
			formatted = addr
		}
	}
	return best, formatted, round2(ratio)
}

// componentLong returns the long name of the first component whose
// primary type is typ.
func componentLong(comps []gmaps.AddressComponent, typ string) string {
	for _, c := range comps {
		if len(c.Types) > 0 && c.Types[0] == typ {
			return c.LongName
		}
	}
	return ""
}

// componentShort is componentLong for the short name.
func componentShort(comps []gmaps.AddressComponent, typ string) string {
	for _, c := range comps {
		if len(c.Types) > 0 && c.Types[0] == typ {
			return c.ShortName
		}
	}
	return ""
}

// componentMember returns the long name of the first component tagged
// with any of the wanted types, at any position.
func componentMember(comps []gmaps.AddressComponent, wanted ...string) string {
	for _, c := range comps {
		for _, w := range wanted {
			if slices.Contains(c.Types, w) {
				return c.LongName
			}
		}
	}
	return ""
}

// streetName extracts the route component. Geocode results for areas
// without named streets tag the locality as colloquial_area instead,
// which counts as a street there but not in place details.
func streetName(comps []gmaps.AddressComponent, allowColloquial bool) string {
	for _, c := range comps {
		if len(c.Types) == 0 {
			continue
		}
		if c.Types[0] == "route" || (allowColloquial && c.Types[0] == "colloquial_area") {
			return c.LongName
		}
	}
	return ""
}

// parseGeocode fills rec from geocode results. A non-empty input text
// selects the best-scoring candidate and stores the match ratio as the
// record's overall confidence; otherwise the first result is taken
// as-is. When no candidate matches at all the record keeps its
// defaults.
func parseGeocode(rec *Record, input string, results []gmaps.GeocodeResult, codeLength int) {
	k := 0
	if input != "" {
		var formatted string
		k, formatted, rec.Confidence = BestGeocodeCandidate(input, results)
		rec.FormattedAddress = formatted
	} else {
		if len(results) == 0 {
			return
		}
		rec.FormattedAddress = results[0].FormattedAddress
	}
	if k < 0 || k >= len(results) {
		return
	}

	res := results[k]
	comps := res.AddressComponents
	rec.StreetNumber = componentLong(comps, "street_number")
	rec.Street = streetName(comps, true)
	rec.City = componentMember(comps, "locality", "postal_town")
	rec.SubLocality = componentMember(comps, "sublocality")
	rec.PostalCode = componentLong(comps, "postal_code")
	rec.AdminAreaLevel2 = componentLong(comps, "administrative_area_level_2")
	rec.AdminAreaLevel1 = componentLong(comps, "administrative_area_level_1")
	rec.Country = componentLong(comps, "country")
	rec.CountryCode = strings.ToLower(componentShort(comps, "country"))
	rec.Latitude = res.Geometry.Location.Lat
	rec.Longitude = res.Geometry.Location.Lng
	rec.LocationType = res.Geometry.LocationType
	if rec.LocationType == "" {
		rec.LocationType = LocationNotFound
	}
	rec.PlaceID = res.PlaceID
	rec.PlusCode = olc.Encode(rec.Latitude, rec.Longitude, codeLength)
	rec.MapsURL = mapsSearchURL(rec.Latitude, rec.Longitude, rec.PlaceID)
}

// parsePlaceDetails fills rec from a place details payload. Details
// hits are always street-level, so the location type is ROOFTOP. A
// non-empty input text stores the match ratio against the formatted
// address as the overall confidence.
func parsePlaceDetails(rec *Record, input string, res *gmaps.PlaceResult, codeLength int) {
	if res == nil {
		return
	}

	rec.FormattedAddress = res.FormattedAddress
	if input != "" {
		rec.Confidence = round2(strsim.Similarity(input, res.FormattedAddress, true))
	}

	comps := res.AddressComponents
	rec.StreetNumber = componentLong(comps, "street_number")
	rec.Street = streetName(comps, false)
	rec.City = componentMember(comps, "locality", "postal_town")
	rec.SubLocality = componentMember(comps, "sublocality")
	rec.PostalCode = componentLong(comps, "postal_code")
	rec.AdminAreaLevel2 = componentLong(comps, "administrative_area_level_2")
	rec.AdminAreaLevel1 = componentLong(comps, "administrative_area_level_1")
	rec.Country = componentLong(comps, "country")
	rec.CountryCode = strings.ToLower(componentShort(comps, "country"))
	rec.Latitude = res.Geometry.Location.Lat
	rec.Longitude = res.Geometry.Location.Lng
	rec.LocationType = LocationRooftop
	rec.PlaceID = res.PlaceID
	rec.PlaceName = res.Name
	rec.PlaceTypes = slices.Clone(res.Types)
	if len(res.Types) > 0 {
		rec.PlaceMainType = res.Types[0]
	}
	rec.PlusCode = olc.Encode(rec.Latitude, rec.Longitude, codeLength)
	rec.MapsURL = mapsSearchURL(rec.Latitude, rec.Longitude, rec.PlaceID)

	applyContact(rec, res)
	applyOpeningHours(rec, res)
}

// applyDetails copies the business fields of a details payload onto an
// already-parsed address record: name, categories, contact links and
// opening hours. Coordinates and address fields are left alone.
func applyDetails(rec *Record, res *gmaps.PlaceResult) {
	if res == nil {
		return
	}
	rec.PlaceName = res.Name
	rec.PlaceTypes = slices.Clone(res.Types)
	if len(res.Types) > 0 {
		rec.PlaceMainType = res.Types[0]
	}
	applyContact(rec, res)
	applyOpeningHours(rec, res)
}

// applyContact sets the outbound links and phone number. Only listed
// businesses carry them; pure address results do not.
func applyContact(rec *Record, res *gmaps.PlaceResult) {
	if !slices.Contains(res.Types, "establishment") {
		return
	}
	rec.PlaceURL = res.URL
	rec.Website = res.Website
	rec.Phone = res.IntlPhoneNumber
}

// refineAddress derives a street line from the formatted address by
// stripping the "postal city, country" tail and any remaining commas.
func refineAddress(rec *Record) string {
	tail := strings.TrimSpace(rec.PostalCode + " " + rec.City + ", " + rec.Country)
	s := strings.TrimSpace(strings.ReplaceAll(rec.FormattedAddress, tail, ""))
	return strings.ReplaceAll(s, ",", "")
}

// applyAddress fills the single-line address, falling back to the
// refined formatted address when no route component was present.
func applyAddress(rec *Record) {
	if rec.Street == "" {
		rec.Street = refineAddress(rec)
	}
	rec.Address = strings.TrimSpace(rec.StreetNumber + " " + rec.Street)
}

package place

import (
	"fmt"
	"strconv"
)

// Location types reported by the geocoder, from least to most precise.
const (
	LocationNotFound          = "NOT_FOUND"
	LocationApproximate       = "APPROXIMATE"
	LocationGeometricCenter   = "GEOMETRIC_CENTER"
	LocationRangeInterpolated = "RANGE_INTERPOLATED"
	LocationRooftop           = "ROOFTOP"
)

// Values stamped on Record.APIUsed by the resolution strategies.
const (
	APIGeocode        = "geocode"
	APIReverseGeocode = "reverse_geocode"
	APIFindPlace      = "find_place"
	APIAutocomplete   = "autocomplete"
	APITextSearch     = "text_search"
	APIPlaceDetails   = "place_details"
)

// Record is the flat result of a resolution attempt. Every strategy
// rebuilds it from scratch; fields left at their zero value simply were
// not resolved. The JSON keys double as column names when records are
// exported to tabular datasets.
type Record struct {
	FormattedAddress string `json:"formatted_address"`
	StreetNumber     string `json:"street_number"`
	Street           string `json:"street"`
	Address          string `json:"address"`
	City             string `json:"city"`
	CityID           string `json:"city_id"`
	SubLocality      string `json:"sub_locality"`
	PostalCode       string `json:"postal_code"`
	AdminAreaLevel2  string `json:"admin_area_level_2"`
	AdminAreaLevel1  string `json:"admin_area_level_1"`
	Country          string `json:"country"`
	CountryCode      string `json:"country_code"`

	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	LocationType     string  `json:"location_type"`
	LocationAccuracy int     `json:"location_accuracy"`

	PlaceID         string   `json:"place_id"`
	PlaceName       string   `json:"place_name"`
	PlaceTypes      []string `json:"place_type,omitempty"`
	PlaceMainType   string   `json:"place_main_type"`
	PlaceMainTypeID string   `json:"place_main_type_id"`
	PlaceBrand      string   `json:"place_brand"`
	PlusCode        string   `json:"plus_code"`

	Confidence             float64 `json:"confidence"`
	ConfidenceOnName       float64 `json:"confidence_on_name"`
	ConfidenceOnAddr       float64 `json:"confidence_on_addr"`
	ConfidenceOnCity       float64 `json:"confidence_on_city"`
	ConfidenceOnPostalCode float64 `json:"confidence_on_postal_code"`
	ConfidenceOnCountry    float64 `json:"confidence_on_country"`

	Accepted bool   `json:"accepted"`
	APIUsed  string `json:"api_used"`

	MapsURL  string `json:"maps_url"`
	PlaceURL string `json:"place_url"`
	Website  string `json:"website"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`

	// Weekly opening hours, one "HH:MM-HH:MM" range per day; several
	// ranges on the same day are joined with "|". Empty means unknown.
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`

	// Distance in kilometers from a reference point, set only when the
	// caller supplies one (nearby search follow-ups).
	Distance *float64 `json:"distance,omitempty"`
}

// NewRecord returns a record with every field unresolved.
func NewRecord() *Record {
	return &Record{LocationType: LocationNotFound}
}

// weekdays exposes the seven schedule fields in day order, Monday
// first.
func (r *Record) weekdays() [7]*string {
	return [7]*string{
		&r.Monday, &r.Tuesday, &r.Wednesday, &r.Thursday,
		&r.Friday, &r.Saturday, &r.Sunday,
	}
}

// accuracyOf ranks a location type on the 0..4 scale used by the
// acceptance rules. Unknown types rank -1, below NOT_FOUND.
func accuracyOf(locationType string) int {
	switch locationType {
	case LocationNotFound:
		return 0
	case LocationApproximate:
		return 1
	case LocationGeometricCenter:
		return 2
	case LocationRangeInterpolated:
		return 3
	case LocationRooftop:
		return 4
	default:
		return -1
	}
}

// mapsSearchURL builds the shareable Google Maps search link for a
// resolved place.
func mapsSearchURL(lat, lng float64, placeID string) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/search/?api=1&query=%.6f%%2C%.6f&query_place_id=%s",
		lat, lng, placeID,
	)
}

// isNumeric reports whether s parses as a number in any common
// notation: integer, float, scientific, prefixed binary/octal/hex,
// bare hex digits, or complex. Phone-number queries hit the integer
// case.
func isNumeric(s string) bool {
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseInt(s, 16, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseComplex(s, 128); err == nil {
		return true
	}
	return false
}

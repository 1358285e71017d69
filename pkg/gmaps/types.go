package gmaps

// Statuses returned in the body of every Maps web service response.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusUnknownError   = "UNKNOWN_ERROR"
	StatusNotFound       = "NOT_FOUND"
)

// Find Place input types.
const (
	InputTypeTextQuery   = "textquery"
	InputTypePhoneNumber = "phonenumber"
)

// LatLng mirrors the location object of the classic Maps APIs.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry carries a result's location and how precisely it was
// resolved.
type Geometry struct {
	Location     LatLng `json:"location"`
	LocationType string `json:"location_type,omitempty"`
}

// AddressComponent is one structured piece of an address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// PlusCode is the open location code block of a result.
type PlusCode struct {
	CompoundCode string `json:"compound_code,omitempty"`
	GlobalCode   string `json:"global_code,omitempty"`
}

// GeocodeResult is one entry of a geocode or reverse geocode response.
type GeocodeResult struct {
	AddressComponents []AddressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          Geometry           `json:"geometry"`
	PlaceID           string             `json:"place_id"`
	PlusCode          *PlusCode          `json:"plus_code,omitempty"`
	Types             []string           `json:"types,omitempty"`
	PartialMatch      bool               `json:"partial_match,omitempty"`
}

// GeocodeResponse is the body of a geocode or reverse geocode call.
type GeocodeResponse struct {
	Results      []GeocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// TimeOfDay is a day-of-week plus an HHMM wall time.
type TimeOfDay struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// OpeningPeriod is one open/close pair of a weekly schedule.
type OpeningPeriod struct {
	Open  *TimeOfDay `json:"open,omitempty"`
	Close *TimeOfDay `json:"close,omitempty"`
}

// OpeningHours is the weekly schedule block of a place.
type OpeningHours struct {
	OpenNow     bool            `json:"open_now,omitempty"`
	Periods     []OpeningPeriod `json:"periods,omitempty"`
	WeekdayText []string        `json:"weekday_text,omitempty"`
}

// PlaceResult is one place payload. Details calls and list calls share
// the shape; list entries simply leave most fields empty.
type PlaceResult struct {
	AddressComponents    []AddressComponent `json:"address_components,omitempty"`
	FormattedAddress     string             `json:"formatted_address,omitempty"`
	Vicinity             string             `json:"vicinity,omitempty"`
	Geometry             Geometry           `json:"geometry"`
	Name                 string             `json:"name,omitempty"`
	PlaceID              string             `json:"place_id"`
	PlusCode             *PlusCode          `json:"plus_code,omitempty"`
	Types                []string           `json:"types,omitempty"`
	URL                  string             `json:"url,omitempty"`
	Website              string             `json:"website,omitempty"`
	FormattedPhoneNumber string             `json:"formatted_phone_number,omitempty"`
	IntlPhoneNumber      string             `json:"international_phone_number,omitempty"`
	OpeningHours         *OpeningHours      `json:"opening_hours,omitempty"`
	BusinessStatus       string             `json:"business_status,omitempty"`
	Rating               float64            `json:"rating,omitempty"`
	UserRatingsTotal     int                `json:"user_ratings_total,omitempty"`
}

// PlaceDetailsResponse is the body of a place details call.
type PlaceDetailsResponse struct {
	Result       *PlaceResult `json:"result"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// PlacesResponse is the body of a text search or nearby search call.
type PlacesResponse struct {
	Results       []PlaceResult `json:"results"`
	Status        string        `json:"status"`
	NextPageToken string        `json:"next_page_token,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// FindPlaceResponse is the body of a find place call.
type FindPlaceResponse struct {
	Candidates   []PlaceResult `json:"candidates"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// AutocompletePrediction is one suggestion from the autocomplete call.
type AutocompletePrediction struct {
	Description string   `json:"description"`
	PlaceID     string   `json:"place_id"`
	Types       []string `json:"types,omitempty"`
}

// AutocompleteResponse is the body of an autocomplete call.
type AutocompleteResponse struct {
	Predictions  []AutocompletePrediction `json:"predictions"`
	Status       string                   `json:"status"`
	ErrorMessage string                   `json:"error_message,omitempty"`
}

// Package place reconciles free-form place descriptions against the
// Google Maps geocoding and places services. A Place carries the
// caller's hints (query text, expected name, address, city, postal
// code, country), runs one of several resolution strategies against
// the API, and scores the resolved record against the hints so callers
// can accept, reject or rank competing candidates.
package place

import (
	"github.com/rotisserie/eris"

	olc "github.com/google/open-location-code/go"

	"github.com/jvigneron-hub/gistools/pkg/geometry"
	"github.com/jvigneron-hub/gistools/pkg/gmaps"
	"github.com/jvigneron-hub/gistools/pkg/strsim"
)

// Place is one reconciliation unit: input hints, resolution
// configuration, and the record of the last strategy run.
type Place struct {
	id         string
	client     gmaps.Client
	hints      Hints
	components map[string]string
	language   string
	codeLength int
	business   bool
	thresholds Thresholds

	record    *Record
	responses Responses
}

// Option configures a Place at construction time.
type Option func(*Place)

// WithID tags the place with a caller-side identifier, carried through
// to exports and logs.
func WithID(id string) Option {
	return func(p *Place) { p.id = id }
}

// WithClient sets the Maps client used by the strategies.
func WithClient(c gmaps.Client) Option {
	return func(p *Place) { p.client = c }
}

// WithComponents replaces the geocoder component filter. The same
// constraints are enforced again by Check on the resolved record.
func WithComponents(components map[string]string) Option {
	return func(p *Place) { p.components = components }
}

// WithLanguage sets the language requested from the API.
func WithLanguage(lang string) Option {
	return func(p *Place) { p.language = lang }
}

// WithBusiness marks the place as a business, turning on place details
// enrichment in the geocoding strategies.
func WithBusiness(business bool) Option {
	return func(p *Place) { p.business = business }
}

// WithCodeLength sets the plus code precision of resolved records.
func WithCodeLength(n int) Option {
	return func(p *Place) { p.codeLength = n }
}

// WithThresholds replaces the acceptance thresholds.
func WithThresholds(t Thresholds) Option {
	return func(p *Place) { p.thresholds = t }
}

// WithHints sets the scoring hints. The query text of a string input
// passed to New takes precedence over Hints.Text.
func WithHints(h Hints) Option {
	return func(p *Place) { p.hints = h }
}

// New builds a Place from an input that is either a free-text query
// (string), a coordinate in any of the supported shapes (Coordinate,
// Point, lat/lng map or two-element slice), or nil. Defaults bias
// resolution to France in French; override with WithComponents and
// WithLanguage.
func New(input any, opts ...Option) (*Place, error) {
	p := &Place{
		components: map[string]string{"country": "france"},
		language:   "fr",
		codeLength: geometry.DefaultCodeLength,
		thresholds: DefaultThresholds(),
		record:     NewRecord(),
	}
	for _, o := range opts {
		o(p)
	}

	switch v := input.(type) {
	case nil:
	case string:
		p.hints.Text = v
	default:
		coord, ok, err := geometry.ParseLocation(v)
		if err != nil {
			return nil, eris.Wrap(err, "place: parse input location")
		}
		if !ok {
			return nil, eris.Errorf("place: unsupported input type %T", v)
		}
		p.record.Latitude = coord.Lat
		p.record.Longitude = coord.Lng
		p.record.PlusCode = olc.Encode(coord.Lat, coord.Lng, p.codeLength)
	}

	return p, nil
}

// ID returns the caller-side identifier.
func (p *Place) ID() string { return p.id }

// Hints returns the scoring hints.
func (p *Place) Hints() Hints { return p.hints }

// Record returns the result of the last strategy run.
func (p *Place) Record() *Record { return p.record }

// Responses returns the raw payloads behind the last strategy run.
func (p *Place) Responses() Responses { return p.responses }

// Thresholds returns the acceptance thresholds.
func (p *Place) Thresholds() Thresholds { return p.thresholds }

// Query returns the free-text query.
func (p *Place) Query() string { return p.hints.Text }

// SetQuery replaces the free-text query.
func (p *Place) SetQuery(q string) { p.hints.Text = q }

// BuildQuery assembles the free-text query from the given values,
// cleaned and normalized, and stores it.
func (p *Place) BuildQuery(parts ...string) string {
	p.hints.Text = strsim.BuildSequence(parts...)
	return p.hints.Text
}

// Coordinates returns the record's latitude and longitude.
func (p *Place) Coordinates() (float64, float64) {
	return p.record.Latitude, p.record.Longitude
}

// Accepted reports the verdict of the last Check.
func (p *Place) Accepted() bool { return p.record.Accepted }

// Reset discards the resolution result and raw payloads, keeping
// hints and configuration.
func (p *Place) Reset() {
	p.record = NewRecord()
	p.responses = Responses{}
}

// Responses holds the raw payloads of a resolution, keyed by call.
// Strategies store what they fetched here; a pre-filled Responses
// passed as a replay is consumed instead of calling the API, which is
// how cached payloads run through the regular parse path.
type Responses struct {
	Geocode        *gmaps.GeocodeResponse      `json:"geocode,omitempty"`
	ReverseGeocode *gmaps.GeocodeResponse      `json:"reverse_geocode,omitempty"`
	FindPlace      *gmaps.FindPlaceResponse    `json:"find_place,omitempty"`
	TextSearch     *gmaps.PlacesResponse       `json:"text_search,omitempty"`
	Autocomplete   *gmaps.AutocompleteResponse `json:"autocomplete,omitempty"`
	NearbySearch   *gmaps.PlacesResponse       `json:"nearby_search,omitempty"`
	PlaceDetails   *gmaps.PlaceDetailsResponse `json:"place_details,omitempty"`
}

func (r *Responses) geocodeResp() *gmaps.GeocodeResponse {
	if r == nil {
		return nil
	}
	return r.Geocode
}

func (r *Responses) reverseGeocodeResp() *gmaps.GeocodeResponse {
	if r == nil {
		return nil
	}
	return r.ReverseGeocode
}

func (r *Responses) findPlaceResp() *gmaps.FindPlaceResponse {
	if r == nil {
		return nil
	}
	return r.FindPlace
}

func (r *Responses) textSearchResp() *gmaps.PlacesResponse {
	if r == nil {
		return nil
	}
	return r.TextSearch
}

func (r *Responses) autocompleteResp() *gmaps.AutocompleteResponse {
	if r == nil {
		return nil
	}
	return r.Autocomplete
}

func (r *Responses) nearbySearchResp() *gmaps.PlacesResponse {
	if r == nil {
		return nil
	}
	return r.NearbySearch
}

func (r *Responses) placeDetailsResp() *gmaps.PlaceDetailsResponse {
	if r == nil {
		return nil
	}
	return r.PlaceDetails
}

func (p *Place) requireClient() (gmaps.Client, error) {
	if p.client == nil {
		return nil, eris.New("place: no maps client configured")
	}
	return p.client, nil
}

package place

import (
	"context"
	"unicode/utf8"

	"github.com/rotisserie/eris"

	"github.com/jvigneron-hub/gistools/pkg/geometry"
	"github.com/jvigneron-hub/gistools/pkg/gmaps"
)

// Strategy option payloads. Every strategy accepts an optional Replay:
// payloads found there are consumed instead of calling the API, so
// cached or canned responses run through the regular parse path.

// GeocodeOptions parameterizes Geocode.
type GeocodeOptions struct {
	Replay *Responses
}

// ReverseGeocodeOptions parameterizes ReverseGeocode.
type ReverseGeocodeOptions struct {
	Replay *Responses
}

// AutocompleteOptions parameterizes Autocomplete.
type AutocompleteOptions struct {
	Replay *Responses
}

// TextSearchOptions parameterizes TextSearch. Radius is in meters.
type TextSearchOptions struct {
	Location *geometry.Coordinate
	Radius   int
	Type     string
	Replay   *Responses
}

// FindPlaceOptions parameterizes FindPlace. With a location the
// candidate search is biased to it: a plain point when Radius is zero,
// a circle of Radius meters otherwise.
type FindPlaceOptions struct {
	Location *geometry.Coordinate
	Radius   int
	Replay   *Responses
}

// RadarOptions parameterizes Radar. Radius is in meters.
type RadarOptions struct {
	Radius  int
	Keyword string
	Type    string
	Replay  *Responses
}

// PlaceDetailsOptions parameterizes PlaceDetails. DistanceKm, when
// set, is stamped on the record for callers chaining from Radar.
type PlaceDetailsOptions struct {
	DistanceKm *float64
	Replay     *Responses
}

// RadarHit is one nearby search result with its distance from the
// search center.
type RadarHit struct {
	PlaceID    string  `json:"place_id"`
	DistanceKm float64 `json:"distance"`
}

// Geocode resolves the query text into a fresh record. Numeric queries
// are treated as phone numbers and routed through find place with
// details enrichment; anything else goes through the geocoder with
// best-candidate selection, business details enrichment when enabled,
// and confidence scoring. Transport and API errors leave the previous
// record in place; an empty result set is not an error and yields a
// default record with APIUsed stamped.
func (p *Place) Geocode(ctx context.Context, opts GeocodeOptions) error {
	rec := NewRecord()
	query := p.hints.Text

	if isNumeric(query) {
		resp := opts.Replay.findPlaceResp()
		if resp == nil {
			c, err := p.requireClient()
			if err != nil {
				return err
			}
			resp, err = c.FindPlace(ctx, gmaps.FindPlaceRequest{
				Input:     query,
				InputType: gmaps.InputTypePhoneNumber,
			})
			if err != nil {
				return eris.Wrap(err, "place: find place by phone number")
			}
		}
		p.responses.FindPlace = resp

		if len(resp.Candidates) > 0 {
			det, err := p.fetchDetails(ctx, opts.Replay, resp.Candidates[0].PlaceID, "")
			if err != nil {
				return err
			}
			if det.Result != nil {
				parsePlaceDetails(rec, "", det.Result, p.codeLength)
				applyAddress(rec)
			}
		}
		rec.APIUsed = APIFindPlace
		p.record = rec
		return nil
	}

	resp := opts.Replay.geocodeResp()
	if resp == nil {
		c, err := p.requireClient()
		if err != nil {
			return err
		}
		resp, err = c.Geocode(ctx, gmaps.GeocodeRequest{
			Address:    query,
			Components: p.components,
			Language:   p.language,
		})
		if err != nil {
			return eris.Wrap(err, "place: geocode")
		}
	}
	p.responses.Geocode = resp

	parseGeocode(rec, query, resp.Results, p.codeLength)
	applyAddress(rec)

	if p.business && rec.PlaceID != "" {
		det, err := p.fetchDetails(ctx, opts.Replay, rec.PlaceID, p.language)
		if err != nil {
			return err
		}
		applyDetails(rec, det.Result)
	}

	p.scoreRecord(rec)
	rec.APIUsed = APIGeocode
	p.record = rec
	return nil
}

// ReverseGeocode resolves the record's current coordinates into an
// address, with business details enrichment when enabled. No
// confidences are scored: there is no text to compare against.
func (p *Place) ReverseGeocode(ctx context.Context, opts ReverseGeocodeOptions) error {
	rec := NewRecord()
	lat, lng := p.Coordinates()

	resp := opts.Replay.reverseGeocodeResp()
	if resp == nil {
		c, err := p.requireClient()
		if err != nil {
			return err
		}
		resp, err = c.ReverseGeocode(ctx, gmaps.ReverseGeocodeRequest{
			Location: gmaps.LatLng{Lat: lat, Lng: lng},
			Language: p.language,
		})
		if err != nil {
			return eris.Wrap(err, "place: reverse geocode")
		}
	}
	p.responses.ReverseGeocode = resp

	parseGeocode(rec, "", resp.Results, p.codeLength)
	applyAddress(rec)

	if p.business && rec.PlaceID != "" {
		det, err := p.fetchDetails(ctx, opts.Replay, rec.PlaceID, p.language)
		if err != nil {
			return err
		}
		applyDetails(rec, det.Result)
	}

	rec.APIUsed = APIReverseGeocode
	p.record = rec
	return nil
}

// Autocomplete resolves the query through place autocomplete: the
// first prediction is fetched in full and scored. The whole input
// counts as typed.
func (p *Place) Autocomplete(ctx context.Context, opts AutocompleteOptions) error {
	rec := NewRecord()
	query := p.hints.Text

	resp := opts.Replay.autocompleteResp()
	if resp == nil {
		c, err := p.requireClient()
		if err != nil {
			return err
		}
		resp, err = c.Autocomplete(ctx, gmaps.AutocompleteRequest{
			Input:    query,
			Offset:   utf8.RuneCountInString(query),
			Language: p.language,
		})
		if err != nil {
			return eris.Wrap(err, "place: autocomplete")
		}
	}
	p.responses.Autocomplete = resp

	if len(resp.Predictions) > 0 {
		det, err := p.fetchDetails(ctx, opts.Replay, resp.Predictions[0].PlaceID, "")
		if err != nil {
			return err
		}
		if det.Result != nil {
			parsePlaceDetails(rec, "", det.Result, p.codeLength)
			applyAddress(rec)
			p.scoreRecord(rec)
		}
	}

	rec.APIUsed = APIAutocomplete
	p.record = rec
	return nil
}

// TextSearch resolves the query through the places text search,
// fetching full details of the first hit and scoring them against the
// query and hints.
func (p *Place) TextSearch(ctx context.Context, opts TextSearchOptions) error {
	rec := NewRecord()
	query := p.hints.Text

	resp := opts.Replay.textSearchResp()
	if resp == nil {
		c, err := p.requireClient()
		if err != nil {
			return err
		}
		req := gmaps.TextSearchRequest{
			Query:    query,
			Radius:   opts.Radius,
			Type:     opts.Type,
			Language: p.language,
		}
		if opts.Location != nil {
			req.Location = &gmaps.LatLng{Lat: opts.Location.Lat, Lng: opts.Location.Lng}
		}
		resp, err = c.TextSearch(ctx, req)
		if err != nil {
			return eris.Wrap(err, "place: text search")
		}
	}
	p.responses.TextSearch = resp

	if resp.Status == gmaps.StatusOK && len(resp.Results) > 0 {
		det, err := p.fetchDetails(ctx, opts.Replay, resp.Results[0].PlaceID, "")
		if err != nil {
			return err
		}
		if det.Result != nil {
			parsePlaceDetails(rec, query, det.Result, p.codeLength)
			applyAddress(rec)
			p.scoreRecord(rec)
		}
	}

	rec.APIUsed = APITextSearch
	p.record = rec
	return nil
}

// FindPlace resolves the query through find place, sniffing phone
// numbers into the phonenumber input type, then fetches and scores
// full details of the first candidate.
func (p *Place) FindPlace(ctx context.Context, opts FindPlaceOptions) error {
	rec := NewRecord()
	query := p.hints.Text

	inputType := gmaps.InputTypeTextQuery
	if isNumeric(query) {
		inputType = gmaps.InputTypePhoneNumber
	}

	var bias string
	if opts.Location != nil {
		if opts.Radius > 0 {
			bias = gmaps.CircleBias(opts.Radius, opts.Location.Lat, opts.Location.Lng)
		} else {
			bias = gmaps.PointBias(opts.Location.Lat, opts.Location.Lng)
		}
	}

	resp := opts.Replay.findPlaceResp()
	if resp == nil {
		c, err := p.requireClient()
		if err != nil {
			return err
		}
		resp, err = c.FindPlace(ctx, gmaps.FindPlaceRequest{
			Input:        query,
			InputType:    inputType,
			LocationBias: bias,
		})
		if err != nil {
			return eris.Wrap(err, "place: find place")
		}
	}
	p.responses.FindPlace = resp

	if len(resp.Candidates) > 0 {
		det, err := p.fetchDetails(ctx, opts.Replay, resp.Candidates[0].PlaceID, "")
		if err != nil {
			return err
		}
		if det.Result != nil {
			parsePlaceDetails(rec, query, det.Result, p.codeLength)
			applyAddress(rec)
			p.scoreRecord(rec)
		}
	}

	rec.APIUsed = APIFindPlace
	p.record = rec
	return nil
}

// Radar finds places around this one. A place holding a query text is
// geocoded first to obtain the search center, which updates the
// record; a place built from coordinates searches around them as-is.
func (p *Place) Radar(ctx context.Context, opts RadarOptions) ([]RadarHit, error) {
	if p.hints.Text != "" {
		if err := p.Geocode(ctx, GeocodeOptions{Replay: opts.Replay}); err != nil {
			return nil, err
		}
	}
	lat, lng := p.Coordinates()
	center := geometry.Coordinate{Lat: lat, Lng: lng}

	resp := opts.Replay.nearbySearchResp()
	if resp == nil {
		c, err := p.requireClient()
		if err != nil {
			return nil, err
		}
		resp, err = c.NearbySearch(ctx, gmaps.NearbySearchRequest{
			Location: gmaps.LatLng{Lat: lat, Lng: lng},
			Radius:   opts.Radius,
			Keyword:  opts.Keyword,
			Type:     opts.Type,
			Language: p.language,
		})
		if err != nil {
			return nil, eris.Wrap(err, "place: nearby search")
		}
	}
	p.responses.NearbySearch = resp

	hits := make([]RadarHit, 0, len(resp.Results))
	for _, res := range resp.Results {
		at := geometry.Coordinate{
			Lat: res.Geometry.Location.Lat,
			Lng: res.Geometry.Location.Lng,
		}
		hits = append(hits, RadarHit{
			PlaceID:    res.PlaceID,
			DistanceKm: geometry.Haversine(at, center),
		})
	}
	return hits, nil
}

// PlaceDetails treats the query text as a place ID and fetches its
// full record. No confidences are scored.
func (p *Place) PlaceDetails(ctx context.Context, opts PlaceDetailsOptions) error {
	rec := NewRecord()

	det, err := p.fetchDetails(ctx, opts.Replay, p.hints.Text, "")
	if err != nil {
		return err
	}
	if det.Result != nil {
		parsePlaceDetails(rec, "", det.Result, p.codeLength)
		applyAddress(rec)
	}

	if opts.DistanceKm != nil {
		d := *opts.DistanceKm
		rec.Distance = &d
	}

	rec.APIUsed = APIPlaceDetails
	p.record = rec
	return nil
}

// fetchDetails retrieves a place details payload, honoring a replayed
// payload when one is supplied.
func (p *Place) fetchDetails(ctx context.Context, replay *Responses, placeID, language string) (*gmaps.PlaceDetailsResponse, error) {
	det := replay.placeDetailsResp()
	if det == nil {
		c, err := p.requireClient()
		if err != nil {
			return nil, err
		}
		det, err = c.PlaceDetails(ctx, gmaps.PlaceDetailsRequest{
			PlaceID:  placeID,
			Language: language,
		})
		if err != nil {
			return nil, eris.Wrap(err, "place: place details")
		}
	}
	p.responses.PlaceDetails = det
	return det, nil
}

// Geocode resolves a free-text query in one call.
func Geocode(ctx context.Context, client gmaps.Client, query string, opts ...Option) (*Place, error) {
	p, err := New(query, withClientFirst(client, opts)...)
	if err != nil {
		return nil, err
	}
	if err := p.Geocode(ctx, GeocodeOptions{}); err != nil {
		return nil, err
	}
	return p, nil
}

// ReverseGeocode resolves a coordinate into an address in one call.
func ReverseGeocode(ctx context.Context, client gmaps.Client, location any, opts ...Option) (*Place, error) {
	p, err := New(location, withClientFirst(client, opts)...)
	if err != nil {
		return nil, err
	}
	if err := p.ReverseGeocode(ctx, ReverseGeocodeOptions{}); err != nil {
		return nil, err
	}
	return p, nil
}

// Autocomplete resolves a partial query in one call.
func Autocomplete(ctx context.Context, client gmaps.Client, query string, opts ...Option) (*Place, error) {
	p, err := New(query, withClientFirst(client, opts)...)
	if err != nil {
		return nil, err
	}
	if err := p.Autocomplete(ctx, AutocompleteOptions{}); err != nil {
		return nil, err
	}
	return p, nil
}

// TextSearch resolves a business query in one call. The place defaults
// to business mode.
func TextSearch(ctx context.Context, client gmaps.Client, query string, searchOpts TextSearchOptions, opts ...Option) (*Place, error) {
	p, err := New(query, withBusinessClientFirst(client, opts)...)
	if err != nil {
		return nil, err
	}
	if err := p.TextSearch(ctx, searchOpts); err != nil {
		return nil, err
	}
	return p, nil
}

// FindPlace resolves a business query through find place in one call.
// The place defaults to business mode.
func FindPlace(ctx context.Context, client gmaps.Client, query string, searchOpts FindPlaceOptions, opts ...Option) (*Place, error) {
	p, err := New(query, withBusinessClientFirst(client, opts)...)
	if err != nil {
		return nil, err
	}
	if err := p.FindPlace(ctx, searchOpts); err != nil {
		return nil, err
	}
	return p, nil
}

// Radar lists places around a query or coordinate in one call.
func Radar(ctx context.Context, client gmaps.Client, input any, radarOpts RadarOptions, opts ...Option) ([]RadarHit, error) {
	p, err := New(input, withBusinessClientFirst(client, opts)...)
	if err != nil {
		return nil, err
	}
	return p.Radar(ctx, radarOpts)
}

// PlaceDetails fetches one place by ID in one call.
func PlaceDetails(ctx context.Context, client gmaps.Client, placeID string, opts ...Option) (*Place, error) {
	p, err := New(placeID, withBusinessClientFirst(client, opts)...)
	if err != nil {
		return nil, err
	}
	if err := p.PlaceDetails(ctx, PlaceDetailsOptions{}); err != nil {
		return nil, err
	}
	return p, nil
}

func withClientFirst(client gmaps.Client, opts []Option) []Option {
	return append([]Option{WithClient(client)}, opts...)
}

func withBusinessClientFirst(client gmaps.Client, opts []Option) []Option {
	return append([]Option{WithClient(client), WithBusiness(true)}, opts...)
}

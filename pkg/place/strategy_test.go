package place

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvigneron-hub/gistools/pkg/geometry"
	"github.com/jvigneron-hub/gistools/pkg/gmaps"
)

// stubMaps cans one response per operation and records every request.
// Unset responses come back empty with ZERO_RESULTS.
type stubMaps struct {
	geocode      *gmaps.GeocodeResponse
	reverse      *gmaps.GeocodeResponse
	details      *gmaps.PlaceDetailsResponse
	findPlace    *gmaps.FindPlaceResponse
	textSearch   *gmaps.PlacesResponse
	autocomplete *gmaps.AutocompleteResponse
	nearby       *gmaps.PlacesResponse

	err        error
	detailsErr error

	geocodeReqs      []gmaps.GeocodeRequest
	reverseReqs      []gmaps.ReverseGeocodeRequest
	detailsReqs      []gmaps.PlaceDetailsRequest
	findPlaceReqs    []gmaps.FindPlaceRequest
	textSearchReqs   []gmaps.TextSearchRequest
	autocompleteReqs []gmaps.AutocompleteRequest
	nearbyReqs       []gmaps.NearbySearchRequest
}

var _ gmaps.Client = (*stubMaps)(nil)

func (s *stubMaps) Geocode(_ context.Context, req gmaps.GeocodeRequest) (*gmaps.GeocodeResponse, error) {
	s.geocodeReqs = append(s.geocodeReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.geocode == nil {
		return &gmaps.GeocodeResponse{Status: gmaps.StatusZeroResults}, nil
	}
	return s.geocode, nil
}

func (s *stubMaps) ReverseGeocode(_ context.Context, req gmaps.ReverseGeocodeRequest) (*gmaps.GeocodeResponse, error) {
	s.reverseReqs = append(s.reverseReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.reverse == nil {
		return &gmaps.GeocodeResponse{Status: gmaps.StatusZeroResults}, nil
	}
	return s.reverse, nil
}

func (s *stubMaps) PlaceDetails(_ context.Context, req gmaps.PlaceDetailsRequest) (*gmaps.PlaceDetailsResponse, error) {
	s.detailsReqs = append(s.detailsReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.detailsErr != nil {
		return nil, s.detailsErr
	}
	if s.details == nil {
		return &gmaps.PlaceDetailsResponse{Status: gmaps.StatusZeroResults}, nil
	}
	return s.details, nil
}

func (s *stubMaps) FindPlace(_ context.Context, req gmaps.FindPlaceRequest) (*gmaps.FindPlaceResponse, error) {
	s.findPlaceReqs = append(s.findPlaceReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.findPlace == nil {
		return &gmaps.FindPlaceResponse{Status: gmaps.StatusZeroResults}, nil
	}
	return s.findPlace, nil
}

func (s *stubMaps) TextSearch(_ context.Context, req gmaps.TextSearchRequest) (*gmaps.PlacesResponse, error) {
	s.textSearchReqs = append(s.textSearchReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.textSearch == nil {
		return &gmaps.PlacesResponse{Status: gmaps.StatusZeroResults}, nil
	}
	return s.textSearch, nil
}

func (s *stubMaps) Autocomplete(_ context.Context, req gmaps.AutocompleteRequest) (*gmaps.AutocompleteResponse, error) {
	s.autocompleteReqs = append(s.autocompleteReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.autocomplete == nil {
		return &gmaps.AutocompleteResponse{Status: gmaps.StatusZeroResults}, nil
	}
	return s.autocomplete, nil
}

func (s *stubMaps) NearbySearch(_ context.Context, req gmaps.NearbySearchRequest) (*gmaps.PlacesResponse, error) {
	s.nearbyReqs = append(s.nearbyReqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.nearby == nil {
		return &gmaps.PlacesResponse{Status: gmaps.StatusZeroResults}, nil
	}
	return s.nearby, nil
}

func okGeocodeResponse(results ...gmaps.GeocodeResult) *gmaps.GeocodeResponse {
	return &gmaps.GeocodeResponse{Status: gmaps.StatusOK, Results: results}
}

func TestGeocode_SelectsBestCandidate(t *testing.T) {
	client := &stubMaps{geocode: okGeocodeResponse(marseilleGeocodeResult(), rivoliGeocodeResult())}

	p, err := Geocode(context.Background(), client, "10 rue de rivoli paris")

	require.NoError(t, err)
	rec := p.Record()
	assert.Equal(t, "10 Rue de Rivoli, 75004 Paris, France", rec.FormattedAddress)
	assert.InDelta(t, 1.0, rec.Confidence, 0.01)
	assert.Equal(t, "10 Rue de Rivoli", rec.Address)
	assert.Equal(t, APIGeocode, rec.APIUsed)
	assert.Equal(t, 4, rec.LocationAccuracy)

	require.Len(t, client.geocodeReqs, 1)
	assert.Equal(t, "10 rue de rivoli paris", client.geocodeReqs[0].Address)
	assert.Equal(t, map[string]string{"country": "france"}, client.geocodeReqs[0].Components)
	assert.Equal(t, "fr", client.geocodeReqs[0].Language)
	assert.Empty(t, client.detailsReqs)

	assert.True(t, p.Check())
}

func TestGeocode_BusinessEnrichment(t *testing.T) {
	client := &stubMaps{
		geocode: okGeocodeResponse(rivoliGeocodeResult()),
		details: carrefourDetailsResponse(),
	}

	p, err := Geocode(context.Background(), client, "10 rue de rivoli paris", WithBusiness(true))

	require.NoError(t, err)
	require.Len(t, client.detailsReqs, 1)
	assert.Equal(t, "ChIJrivoli", client.detailsReqs[0].PlaceID)
	assert.Equal(t, "fr", client.detailsReqs[0].Language)

	rec := p.Record()
	assert.Equal(t, "Carrefour City", rec.PlaceName)
	assert.Equal(t, "supermarket", rec.PlaceMainType)
	assert.Equal(t, "+33 1 42 72 12 34", rec.Phone)
	assert.Equal(t, "08:00-21:00", rec.Monday)
	// The geocoded address survives the enrichment.
	assert.Equal(t, "Rue de Rivoli", rec.Street)
	assert.InDelta(t, 48.855599, rec.Latitude, 1e-6)
}

func TestGeocode_PhoneNumberUsesFindPlace(t *testing.T) {
	client := &stubMaps{
		findPlace: &gmaps.FindPlaceResponse{
			Status:     gmaps.StatusOK,
			Candidates: []gmaps.PlaceResult{{PlaceID: "ChIJcarrefour"}},
		},
		details: carrefourDetailsResponse(),
	}

	p, err := Geocode(context.Background(), client, "0142721234")

	require.NoError(t, err)
	assert.Empty(t, client.geocodeReqs)
	require.Len(t, client.findPlaceReqs, 1)
	assert.Equal(t, "0142721234", client.findPlaceReqs[0].Input)
	assert.Equal(t, gmaps.InputTypePhoneNumber, client.findPlaceReqs[0].InputType)
	require.Len(t, client.detailsReqs, 1)
	assert.Equal(t, "", client.detailsReqs[0].Language)

	rec := p.Record()
	assert.Equal(t, APIFindPlace, rec.APIUsed)
	assert.Equal(t, "Carrefour City", rec.PlaceName)
	// Phone lookups are not scored against the number.
	assert.Equal(t, 0.0, rec.Confidence)
}

func TestGeocode_NoResults(t *testing.T) {
	client := &stubMaps{}

	p, err := Geocode(context.Background(), client, "zzzz nowhere at all")

	require.NoError(t, err)
	rec := p.Record()
	assert.Equal(t, APIGeocode, rec.APIUsed)
	assert.Equal(t, LocationNotFound, rec.LocationType)
	assert.Equal(t, "", rec.FormattedAddress)
	assert.False(t, p.Check())
}

func TestGeocode_APIErrorLeavesRecord(t *testing.T) {
	client := &stubMaps{err: errors.New("boom")}
	p, err := New("10 rue de rivoli paris", WithClient(client))
	require.NoError(t, err)
	p.Record().FormattedAddress = "previous run"

	err = p.Geocode(context.Background(), GeocodeOptions{})

	require.ErrorContains(t, err, "place: geocode")
	assert.Equal(t, "previous run", p.Record().FormattedAddress)
	assert.Equal(t, "", p.Record().APIUsed)
}

func TestGeocode_DetailsErrorLeavesRecord(t *testing.T) {
	client := &stubMaps{
		geocode:    okGeocodeResponse(rivoliGeocodeResult()),
		detailsErr: errors.New("boom"),
	}
	p, err := New("10 rue de rivoli paris", WithClient(client), WithBusiness(true))
	require.NoError(t, err)

	err = p.Geocode(context.Background(), GeocodeOptions{})

	require.Error(t, err)
	assert.Equal(t, "", p.Record().FormattedAddress)
}

func TestGeocode_Replay(t *testing.T) {
	replay := &Responses{Geocode: okGeocodeResponse(rivoliGeocodeResult())}
	p, err := New("10 rue de rivoli paris")
	require.NoError(t, err)

	err = p.Geocode(context.Background(), GeocodeOptions{Replay: replay})

	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.Record().Confidence, 0.01)
	assert.Equal(t, APIGeocode, p.Record().APIUsed)
	assert.Same(t, replay.Geocode, p.Responses().Geocode)
}

func TestReverseGeocode(t *testing.T) {
	client := &stubMaps{reverse: okGeocodeResponse(rivoliGeocodeResult())}

	p, err := ReverseGeocode(context.Background(), client, [2]float64{48.8556, 2.3601})

	require.NoError(t, err)
	require.Len(t, client.reverseReqs, 1)
	assert.InDelta(t, 48.8556, client.reverseReqs[0].Location.Lat, 1e-9)
	assert.InDelta(t, 2.3601, client.reverseReqs[0].Location.Lng, 1e-9)
	assert.Equal(t, "fr", client.reverseReqs[0].Language)

	rec := p.Record()
	assert.Equal(t, APIReverseGeocode, rec.APIUsed)
	assert.Equal(t, "10 Rue de Rivoli, 75004 Paris, France", rec.FormattedAddress)
	// Nothing to compare a coordinate against.
	assert.Equal(t, 0.0, rec.Confidence)
	assert.Equal(t, 0, rec.LocationAccuracy)
}

func TestReverseGeocode_Business(t *testing.T) {
	client := &stubMaps{
		reverse: okGeocodeResponse(rivoliGeocodeResult()),
		details: carrefourDetailsResponse(),
	}

	p, err := ReverseGeocode(context.Background(), client, [2]float64{48.8556, 2.3601}, WithBusiness(true))

	require.NoError(t, err)
	require.Len(t, client.detailsReqs, 1)
	assert.Equal(t, "fr", client.detailsReqs[0].Language)
	assert.Equal(t, "Carrefour City", p.Record().PlaceName)
}

func TestAutocomplete_TakesFirstPrediction(t *testing.T) {
	client := &stubMaps{
		autocomplete: &gmaps.AutocompleteResponse{
			Status: gmaps.StatusOK,
			Predictions: []gmaps.AutocompletePrediction{
				{Description: "Carrefour City, Rue Saint-Antoine, Paris", PlaceID: "ChIJcarrefour"},
				{Description: "Carrefour Market, Lyon", PlaceID: "ChIJother"},
			},
		},
		details: carrefourDetailsResponse(),
	}

	p, err := Autocomplete(context.Background(), client, "carrefour", WithHints(Hints{Name: "carrefour city"}))

	require.NoError(t, err)
	require.Len(t, client.autocompleteReqs, 1)
	assert.Equal(t, "carrefour", client.autocompleteReqs[0].Input)
	assert.Equal(t, 9, client.autocompleteReqs[0].Offset)
	require.Len(t, client.detailsReqs, 1)
	assert.Equal(t, "ChIJcarrefour", client.detailsReqs[0].PlaceID)

	rec := p.Record()
	assert.Equal(t, APIAutocomplete, rec.APIUsed)
	assert.Equal(t, "Carrefour City", rec.PlaceName)
	assert.InDelta(t, 1.0, rec.ConfidenceOnName, 0.01)
	assert.Equal(t, 4, rec.LocationAccuracy)
}

func TestAutocomplete_NoPredictions(t *testing.T) {
	client := &stubMaps{}

	p, err := Autocomplete(context.Background(), client, "zzzz")

	require.NoError(t, err)
	assert.Empty(t, client.detailsReqs)
	assert.Equal(t, APIAutocomplete, p.Record().APIUsed)
	assert.Equal(t, "", p.Record().PlaceName)
}

func TestTextSearch(t *testing.T) {
	client := &stubMaps{
		textSearch: &gmaps.PlacesResponse{
			Status:  gmaps.StatusOK,
			Results: []gmaps.PlaceResult{{PlaceID: "ChIJcarrefour"}, {PlaceID: "ChIJother"}},
		},
		details: carrefourDetailsResponse(),
	}

	p, err := TextSearch(context.Background(), client, "carrefour rue saint antoine paris", TextSearchOptions{
		Location: &geometry.Coordinate{Lat: 48.8566, Lng: 2.3522},
		Radius:   500,
		Type:     "supermarket",
	})

	require.NoError(t, err)
	require.Len(t, client.textSearchReqs, 1)
	req := client.textSearchReqs[0]
	assert.Equal(t, "carrefour rue saint antoine paris", req.Query)
	require.NotNil(t, req.Location)
	assert.InDelta(t, 48.8566, req.Location.Lat, 1e-9)
	assert.Equal(t, 500, req.Radius)
	assert.Equal(t, "supermarket", req.Type)
	assert.Equal(t, "fr", req.Language)
	require.Len(t, client.detailsReqs, 1)
	assert.Equal(t, "ChIJcarrefour", client.detailsReqs[0].PlaceID)

	rec := p.Record()
	assert.Equal(t, APITextSearch, rec.APIUsed)
	assert.Equal(t, "Carrefour City", rec.PlaceName)
	assert.Greater(t, rec.Confidence, 0.5)
}

func TestTextSearch_ZeroResults(t *testing.T) {
	client := &stubMaps{}

	p, err := TextSearch(context.Background(), client, "zzzz", TextSearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, client.detailsReqs)
	assert.Equal(t, APITextSearch, p.Record().APIUsed)
	assert.Equal(t, "", p.Record().PlaceID)
}

func TestFindPlace_LocationBias(t *testing.T) {
	tests := []struct {
		name string
		opts FindPlaceOptions
		want string
	}{
		{
			name: "no location",
			opts: FindPlaceOptions{},
			want: "",
		},
		{
			name: "point",
			opts: FindPlaceOptions{Location: &geometry.Coordinate{Lat: 48.8566, Lng: 2.3522}},
			want: "point:48.85660,2.35220",
		},
		{
			name: "circle",
			opts: FindPlaceOptions{Location: &geometry.Coordinate{Lat: 48.8566, Lng: 2.3522}, Radius: 500},
			want: "circle:500@48.85660,2.35220",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubMaps{
				findPlace: &gmaps.FindPlaceResponse{
					Status:     gmaps.StatusOK,
					Candidates: []gmaps.PlaceResult{{PlaceID: "ChIJcarrefour"}},
				},
				details: carrefourDetailsResponse(),
			}

			_, err := FindPlace(context.Background(), client, "carrefour city paris", tt.opts)

			require.NoError(t, err)
			require.Len(t, client.findPlaceReqs, 1)
			assert.Equal(t, tt.want, client.findPlaceReqs[0].LocationBias)
			assert.Equal(t, gmaps.InputTypeTextQuery, client.findPlaceReqs[0].InputType)
		})
	}
}

func TestFindPlace_ScoresFirstCandidate(t *testing.T) {
	client := &stubMaps{
		findPlace: &gmaps.FindPlaceResponse{
			Status:     gmaps.StatusOK,
			Candidates: []gmaps.PlaceResult{{PlaceID: "ChIJcarrefour"}},
		},
		details: carrefourDetailsResponse(),
	}

	p, err := FindPlace(context.Background(), client, "carrefour rue saint antoine paris", FindPlaceOptions{})

	require.NoError(t, err)
	rec := p.Record()
	assert.Equal(t, APIFindPlace, rec.APIUsed)
	assert.Greater(t, rec.Confidence, 0.5)
	assert.Equal(t, "Carrefour City", rec.PlaceName)
}

func TestRadar(t *testing.T) {
	center := [2]float64{48.855599, 2.360107}
	client := &stubMaps{
		nearby: &gmaps.PlacesResponse{
			Status: gmaps.StatusOK,
			Results: []gmaps.PlaceResult{
				{
					PlaceID: "ChIJhere",
					Geometry: gmaps.Geometry{
						Location: gmaps.LatLng{Lat: 48.855599, Lng: 2.360107},
					},
				},
				{
					PlaceID: "ChIJnorth",
					Geometry: gmaps.Geometry{
						Location: gmaps.LatLng{Lat: 48.864599, Lng: 2.360107},
					},
				},
			},
		},
	}

	hits, err := Radar(context.Background(), client, center, RadarOptions{
		Radius:  1500,
		Keyword: "supermarket",
	})

	require.NoError(t, err)
	assert.Empty(t, client.geocodeReqs)
	require.Len(t, client.nearbyReqs, 1)
	assert.InDelta(t, 48.855599, client.nearbyReqs[0].Location.Lat, 1e-9)
	assert.Equal(t, 1500, client.nearbyReqs[0].Radius)
	assert.Equal(t, "supermarket", client.nearbyReqs[0].Keyword)

	require.Len(t, hits, 2)
	assert.Equal(t, "ChIJhere", hits[0].PlaceID)
	assert.InDelta(t, 0.0, hits[0].DistanceKm, 1e-9)
	assert.Equal(t, "ChIJnorth", hits[1].PlaceID)
	assert.InDelta(t, 1.0, hits[1].DistanceKm, 0.02)
}

func TestRadar_GeocodesQueryFirst(t *testing.T) {
	client := &stubMaps{
		geocode: okGeocodeResponse(rivoliGeocodeResult()),
		nearby:  &gmaps.PlacesResponse{Status: gmaps.StatusOK},
	}
	p, err := New("10 rue de rivoli paris", WithClient(client))
	require.NoError(t, err)

	_, err = p.Radar(context.Background(), RadarOptions{Radius: 500})

	require.NoError(t, err)
	require.Len(t, client.geocodeReqs, 1)
	require.Len(t, client.nearbyReqs, 1)
	// The query was geocoded and its record now carries the center.
	assert.InDelta(t, 48.855599, client.nearbyReqs[0].Location.Lat, 1e-6)
	assert.Equal(t, APIGeocode, p.Record().APIUsed)
	assert.Equal(t, "10 Rue de Rivoli, 75004 Paris, France", p.Record().FormattedAddress)
}

func TestPlaceDetails(t *testing.T) {
	client := &stubMaps{details: carrefourDetailsResponse()}
	d := 1.5

	p, err := New("ChIJcarrefour", WithClient(client))
	require.NoError(t, err)
	err = p.PlaceDetails(context.Background(), PlaceDetailsOptions{DistanceKm: &d})

	require.NoError(t, err)
	require.Len(t, client.detailsReqs, 1)
	assert.Equal(t, "ChIJcarrefour", client.detailsReqs[0].PlaceID)
	assert.Equal(t, "", client.detailsReqs[0].Language)

	rec := p.Record()
	assert.Equal(t, APIPlaceDetails, rec.APIUsed)
	assert.Equal(t, "Carrefour City", rec.PlaceName)
	require.NotNil(t, rec.Distance)
	assert.Equal(t, 1.5, *rec.Distance)
	assert.Equal(t, 0.0, rec.Confidence)
}

func TestPlaceDetails_Replay(t *testing.T) {
	replay := &Responses{PlaceDetails: carrefourDetailsResponse()}
	p, err := New("ChIJcarrefour")
	require.NoError(t, err)

	err = p.PlaceDetails(context.Background(), PlaceDetailsOptions{Replay: replay})

	require.NoError(t, err)
	assert.Equal(t, "Carrefour City", p.Record().PlaceName)
	assert.Same(t, replay.PlaceDetails, p.Responses().PlaceDetails)
}

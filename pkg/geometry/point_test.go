package geometry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	p := NewPoint(48.8566, 2.3522,
		WithID("p1"),
		WithExternalID("osm:42"),
		WithName("Paris"),
		WithDescription("capital"),
	)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "osm:42", p.ExternalID)
	assert.Equal(t, "Paris", p.Name)
	assert.Equal(t, "capital", p.Description)
	assert.InDelta(t, 48.8566, p.Latitude, 1e-9)
	assert.InDelta(t, 2.3522, p.Longitude, 1e-9)

	// Ten-digit code plus separator.
	assert.Len(t, p.PlusCode, 11)
	assert.Contains(t, p.PlusCode, "+")
}

func TestNewPointCodeLength(t *testing.T) {
	long := NewPoint(48.8566, 2.3522, WithCodeLength(12))
	short := NewPoint(48.8566, 2.3522)
	assert.Greater(t, len(long.PlusCode), len(short.PlusCode))
	assert.True(t, strings.HasPrefix(long.PlusCode, short.PlusCode[:8]))
}

func TestPointDistanceTo(t *testing.T) {
	a := NewPoint(paris.Lat, paris.Lng)
	b := NewPoint(marseille.Lat, marseille.Lng)
	assert.InDelta(t, Haversine(paris, marseille), a.DistanceTo(b), 1e-9)
}

func TestPointWKT(t *testing.T) {
	p := NewPoint(48.8566, 2.3522)
	got, err := p.WKT()
	require.NoError(t, err)
	assert.Equal(t, "POINT (2.3522 48.8566)", got)
}

func TestPointJSON(t *testing.T) {
	p := NewPoint(48.8566, 2.3522, WithID("p1"), WithName("Paris"))
	got, err := p.JSON()
	require.NoError(t, err)
	assert.Contains(t, got, `"id":"p1"`)
	assert.Contains(t, got, `"name":"Paris"`)
	assert.Contains(t, got, `"plus_code":`)
	assert.NotContains(t, got, "codeLength")
}

func TestNearestPoint(t *testing.T) {
	candidates := []Point{
		NewPoint(43.2965, 5.3698, WithName("Marseille")),
		NewPoint(48.85, 2.35, WithName("Paris center")),
		NewPoint(45.764, 4.8357, WithName("Lyon")),
	}

	idx, dist := NearestPoint(paris, candidates)
	require.Equal(t, 1, idx)
	assert.Less(t, dist, 1.0)

	idx, dist = NearestPoint(paris, nil)
	assert.Equal(t, -1, idx)
	assert.Zero(t, dist)
}

func TestDecodePolyline(t *testing.T) {
	// Reference vector from the polyline format documentation.
	coords, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	require.Len(t, coords, 3)

	assert.InDelta(t, 38.5, coords[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, coords[0].Lng, 1e-5)
	assert.InDelta(t, 40.7, coords[1].Lat, 1e-5)
	assert.InDelta(t, -120.95, coords[1].Lng, 1e-5)
	assert.InDelta(t, 43.252, coords[2].Lat, 1e-5)
	assert.InDelta(t, -126.453, coords[2].Lng, 1e-5)
}

func TestPolylineRoundTrip(t *testing.T) {
	in := []Coordinate{paris, marseille, {Lat: 45.764, Lng: 4.8357}}
	out, err := DecodePolyline(EncodePolyline(in))
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.InDelta(t, in[i].Lat, out[i].Lat, 1e-5)
		assert.InDelta(t, in[i].Lng, out[i].Lng, 1e-5)
	}
}

func TestDecodePolylineInvalid(t *testing.T) {
	_, err := DecodePolyline("\x01")
	assert.Error(t, err)
}

package geometry

import (
	"encoding/json"

	olc "github.com/google/open-location-code/go"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// DefaultCodeLength is the open location code length used when a point
// does not override it. Ten digits resolve to roughly a 14m cell.
const DefaultCodeLength = 10

// wktPrecision bounds coordinate digits when serializing, enough for
// centimeter-level positions.
const wktPrecision = 6

// Point is a named location. The plus code is derived from the
// coordinates at construction time.
type Point struct {
	ID          string  `json:"id,omitempty"`
	ExternalID  string  `json:"external_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	PlusCode    string  `json:"plus_code,omitempty"`

	codeLength int
}

// PointOption customizes NewPoint.
type PointOption func(*Point)

// WithID sets the point identifier.
func WithID(id string) PointOption {
	return func(p *Point) { p.ID = id }
}

// WithExternalID sets the upstream identifier the point was loaded
// under.
func WithExternalID(id string) PointOption {
	return func(p *Point) { p.ExternalID = id }
}

// WithName sets the display name.
func WithName(name string) PointOption {
	return func(p *Point) { p.Name = name }
}

// WithDescription sets the free-text description.
func WithDescription(desc string) PointOption {
	return func(p *Point) { p.Description = desc }
}

// WithCodeLength overrides the plus-code digit count.
func WithCodeLength(n int) PointOption {
	return func(p *Point) { p.codeLength = n }
}

// NewPoint builds a point at the given coordinates and computes its
// plus code.
func NewPoint(lat, lng float64, opts ...PointOption) Point {
	p := Point{Latitude: lat, Longitude: lng}
	for _, opt := range opts {
		opt(&p)
	}
	if p.codeLength <= 0 {
		p.codeLength = DefaultCodeLength
	}
	p.PlusCode = olc.Encode(lat, lng, p.codeLength)
	return p
}

// Coordinate returns the point's latitude/longitude pair.
func (p Point) Coordinate() Coordinate {
	return Coordinate{Lat: p.Latitude, Lng: p.Longitude}
}

// DistanceTo returns the great-circle distance to q in kilometers.
func (p Point) DistanceTo(q Point) float64 {
	return Haversine(p.Coordinate(), q.Coordinate())
}

// WKT serializes the point as a well-known-text POINT, longitude first.
func (p Point) WKT() (string, error) {
	g := geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude})
	s, err := wkt.Marshal(g, wkt.EncodeOptionWithMaxDecimalDigits(wktPrecision))
	if err != nil {
		return "", eris.Wrap(err, "geometry: encode WKT")
	}
	return s, nil
}

// JSON serializes the point with its canonical field names.
func (p Point) JSON() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", eris.Wrap(err, "geometry: encode point")
	}
	return string(data), nil
}

// NearestPoint returns the index of the candidate closest to origin and
// the distance in kilometers. The index is -1 when candidates is empty.
func NearestPoint(origin Coordinate, candidates []Point) (int, float64) {
	best, bestDist := -1, 0.0
	for i, c := range candidates {
		d := Haversine(origin, c.Coordinate())
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

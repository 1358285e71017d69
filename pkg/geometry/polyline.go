package geometry

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-polyline"
)

// DecodePolyline expands an encoded polyline into its coordinates.
// Trailing garbage after a well-formed polyline is an error.
func DecodePolyline(encoded string) ([]Coordinate, error) {
	pairs, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, eris.Wrap(err, "geometry: decode polyline")
	}
	if len(rest) > 0 {
		return nil, eris.Errorf("geometry: %d trailing bytes after polyline", len(rest))
	}
	coords := make([]Coordinate, 0, len(pairs))
	for _, p := range pairs {
		coords = append(coords, Coordinate{Lat: p[0], Lng: p[1]})
	}
	return coords, nil
}

// EncodePolyline encodes coordinates into the compact polyline format.
func EncodePolyline(coords []Coordinate) string {
	pairs := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pairs = append(pairs, []float64{c.Lat, c.Lng})
	}
	return string(polyline.EncodeCoords(pairs))
}

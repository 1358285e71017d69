// Package geometry provides the coordinate plumbing behind the
// geocoding pipeline: loose location parsing, great-circle and planar
// distances, plus-coded points, polyline decoding and shapefile
// loading.
package geometry

import "math"

// EarthRadiusKm is the radius used by every great-circle computation in
// this package. The historical value keeps distances comparable with
// datasets scored before the switch to Go.
const EarthRadiusKm = 6378.388

const milesPerKm = 0.621371

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Haversine returns the great-circle distance between a and b in
// kilometers.
func Haversine(a, b Coordinate) float64 {
	lat1, lng1 := radians(a.Lat), radians(a.Lng)
	lat2, lng2 := radians(b.Lat), radians(b.Lng)

	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLng := math.Sin((lng2 - lng1) / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// HaversineMeters returns the great-circle distance in meters.
func HaversineMeters(a, b Coordinate) float64 {
	return Haversine(a, b) * 1000
}

// XYZ is a cartesian projection of a GPS coordinate, in kilometers.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Cartesian projects a coordinate onto a sphere of radius EarthRadiusKm.
func Cartesian(c Coordinate) XYZ {
	lat, lng := radians(c.Lat), radians(c.Lng)
	return XYZ{
		X: EarthRadiusKm * math.Cos(lat) * math.Cos(lng),
		Y: EarthRadiusKm * math.Cos(lat) * math.Sin(lng),
		Z: EarthRadiusKm * math.Sin(lat),
	}
}

// Euclidean returns the planar distance between two projected points.
// Z is ignored: the projection is used for map-plane comparisons only.
func Euclidean(a, b XYZ) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Manhattan returns the taxicab distance between two projected points,
// ignoring Z.
func Manhattan(a, b XYZ) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// KmToMiles converts kilometers to statute miles.
func KmToMiles(km float64) float64 { return km * milesPerKm }

// MilesToKm converts statute miles to kilometers.
func MilesToKm(mi float64) float64 { return mi / milesPerKm }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

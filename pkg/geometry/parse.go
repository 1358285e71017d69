package geometry

import "github.com/rotisserie/eris"

// latLngKeys lists the accepted map spellings in priority order.
var latLngKeys = [][2]string{
	{"lat", "lng"},
	{"Lat", "Lng"},
	{"latitude", "longitude"},
	{"Latitude", "Longitude"},
	{"lat", "lon"},
	{"Lat", "Lon"},
}

// ParseLocation extracts a coordinate from loosely typed input: a
// Coordinate or Point, a map keyed by any of the usual lat/lng spelling
// variants, or a two-element numeric pair. The boolean reports whether
// a coordinate was found; free text and nil simply report false so the
// caller can fall back to text geocoding. A pair of the right shape but
// the wrong element types is an error.
func ParseLocation(v any) (Coordinate, bool, error) {
	switch loc := v.(type) {
	case nil:
		return Coordinate{}, false, nil
	case Coordinate:
		return loc, true, nil
	case *Coordinate:
		if loc == nil {
			return Coordinate{}, false, nil
		}
		return *loc, true, nil
	case Point:
		return loc.Coordinate(), true, nil
	case *Point:
		if loc == nil {
			return Coordinate{}, false, nil
		}
		return loc.Coordinate(), true, nil
	case map[string]float64:
		m := make(map[string]any, len(loc))
		for k, f := range loc {
			m[k] = f
		}
		return fromMap(m)
	case map[string]any:
		return fromMap(loc)
	case [2]float64:
		return Coordinate{Lat: loc[0], Lng: loc[1]}, true, nil
	case []float64:
		if len(loc) != 2 {
			return Coordinate{}, false, eris.Errorf("geometry: location pair has %d elements", len(loc))
		}
		return Coordinate{Lat: loc[0], Lng: loc[1]}, true, nil
	case []any:
		if len(loc) != 2 {
			return Coordinate{}, false, eris.Errorf("geometry: location pair has %d elements", len(loc))
		}
		lat, ok1 := toFloat(loc[0])
		lng, ok2 := toFloat(loc[1])
		if !ok1 || !ok2 {
			return Coordinate{}, false, eris.New("geometry: location pair elements must be numeric")
		}
		return Coordinate{Lat: lat, Lng: lng}, true, nil
	default:
		return Coordinate{}, false, nil
	}
}

func fromMap(m map[string]any) (Coordinate, bool, error) {
	for _, keys := range latLngKeys {
		lat, ok1 := toFloat(m[keys[0]])
		lng, ok2 := toFloat(m[keys[1]])
		if ok1 && ok2 {
			return Coordinate{Lat: lat, Lng: lng}, true, nil
		}
	}
	return Coordinate{}, false, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jvigneron-hub/gistools/pkg/place"
)

// Result pairs an input row with its resolved record. Err carries the
// resolution error message for rows that failed hard.
type Result struct {
	Input  Input
	Record *place.Record
	Err    string
}

// recordColumns fixes the output column order. Names match the Record
// JSON tags so a written dataset round-trips through ReadCSV.
var recordColumns = []struct {
	name string
	get  func(*place.Record) string
}{
	{"formatted_address", func(r *place.Record) string { return r.FormattedAddress }},
	{"street_number", func(r *place.Record) string { return r.StreetNumber }},
	{"street", func(r *place.Record) string { return r.Street }},
	{"address", func(r *place.Record) string { return r.Address }},
	{"city", func(r *place.Record) string { return r.City }},
	{"city_id", func(r *place.Record) string { return r.CityID }},
	{"sub_locality", func(r *place.Record) string { return r.SubLocality }},
	{"postal_code", func(r *place.Record) string { return r.PostalCode }},
	{"admin_area_level_2", func(r *place.Record) string { return r.AdminAreaLevel2 }},
	{"admin_area_level_1", func(r *place.Record) string { return r.AdminAreaLevel1 }},
	{"country", func(r *place.Record) string { return r.Country }},
	{"country_code", func(r *place.Record) string { return r.CountryCode }},
	{"latitude", func(r *place.Record) string { return formatFloat(r.Latitude) }},
	{"longitude", func(r *place.Record) string { return formatFloat(r.Longitude) }},
	{"location_type", func(r *place.Record) string { return r.LocationType }},
	{"location_accuracy", func(r *place.Record) string { return strconv.Itoa(r.LocationAccuracy) }},
	{"place_id", func(r *place.Record) string { return r.PlaceID }},
	{"place_name", func(r *place.Record) string { return r.PlaceName }},
	{"place_type", func(r *place.Record) string { return strings.Join(r.PlaceTypes, "|") }},
	{"place_main_type", func(r *place.Record) string { return r.PlaceMainType }},
	{"place_main_type_id", func(r *place.Record) string { return r.PlaceMainTypeID }},
	{"place_brand", func(r *place.Record) string { return r.PlaceBrand }},
	{"plus_code", func(r *place.Record) string { return r.PlusCode }},
	{"confidence", func(r *place.Record) string { return formatFloat(r.Confidence) }},
	{"confidence_on_name", func(r *place.Record) string { return formatFloat(r.ConfidenceOnName) }},
	{"confidence_on_addr", func(r *place.Record) string { return formatFloat(r.ConfidenceOnAddr) }},
	{"confidence_on_city", func(r *place.Record) string { return formatFloat(r.ConfidenceOnCity) }},
	{"confidence_on_postal_code", func(r *place.Record) string { return formatFloat(r.ConfidenceOnPostalCode) }},
	{"confidence_on_country", func(r *place.Record) string { return formatFloat(r.ConfidenceOnCountry) }},
	{"accepted", func(r *place.Record) string { return strconv.FormatBool(r.Accepted) }},
	{"api_used", func(r *place.Record) string { return r.APIUsed }},
	{"maps_url", func(r *place.Record) string { return r.MapsURL }},
	{"place_url", func(r *place.Record) string { return r.PlaceURL }},
	{"website", func(r *place.Record) string { return r.Website }},
	{"phone", func(r *place.Record) string { return r.Phone }},
	{"email", func(r *place.Record) string { return r.Email }},
	{"monday", func(r *place.Record) string { return r.Monday }},
	{"tuesday", func(r *place.Record) string { return r.Tuesday }},
	{"wednesday", func(r *place.Record) string { return r.Wednesday }},
	{"thursday", func(r *place.Record) string { return r.Thursday }},
	{"friday", func(r *place.Record) string { return r.Friday }},
	{"saturday", func(r *place.Record) string { return r.Saturday }},
	{"sunday", func(r *place.Record) string { return r.Sunday }},
	{"distance", func(r *place.Record) string {
		if r.Distance == nil {
			return ""
		}
		return formatFloat(*r.Distance)
	}},
}

// WriteCSV writes one row per result: the input identity, the flattened
// record, and the per-row error.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(recordColumns)+3)
	header = append(header, "id", "query")
	for _, c := range recordColumns {
		header = append(header, c.name)
	}
	header = append(header, "error")
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "dataset: write header")
	}

	for _, res := range results {
		rec := res.Record
		if rec == nil {
			rec = place.NewRecord()
		}
		row := make([]string, 0, len(header))
		row = append(row, res.Input.ID, res.Input.Query)
		for _, c := range recordColumns {
			row = append(row, c.get(rec))
		}
		row = append(row, res.Err)
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "dataset: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "dataset: flush")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

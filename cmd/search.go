package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jvigneron-hub/gistools/pkg/geometry"
	"github.com/jvigneron-hub/gistools/pkg/place"
)

// Nearby search refuses an unbounded area, so radar mode falls back to
// a city-block scale circle when no radius is given.
const defaultRadarRadius = 1000

var searchCmd = &cobra.Command{
	Use:   "search \"QUERY\"",
	Short: "Resolve a business query through the places search APIs",
	Long: `Resolves the query through one of the places search modes:

  text   places text search, full details of the first hit (default)
  find   find place from text or phone number
  auto   place autocomplete, full details of the first prediction
  radar  geocode the query, then list places around it with distances`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("resolve"); err != nil {
			return err
		}

		f := cmd.Flags()
		mode, _ := f.GetString("mode")
		searchType, _ := f.GetString("type")
		radius, _ := f.GetInt("radius")
		keyword, _ := f.GetString("keyword")

		if searchType != "" && !place.IsBusinessType(searchType) {
			return eris.Errorf("unknown place type %q", searchType)
		}
		if f.Changed("lat") != f.Changed("lng") {
			return eris.New("--lat and --lng go together")
		}

		var location *geometry.Coordinate
		if f.Changed("lat") {
			lat, _ := f.GetFloat64("lat")
			lng, _ := f.GetFloat64("lng")
			if err := checkCoordinate(lat, lng); err != nil {
				return err
			}
			location = &geometry.Coordinate{Lat: lat, Lng: lng}
		}

		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}
		opts = append(opts,
			place.WithClient(initMapsClient()),
			place.WithHints(hintsFromFlags(cmd)),
		)
		// Search targets are businesses unless the caller says otherwise.
		if !f.Changed("business") {
			opts = append(opts, place.WithBusiness(true))
		}

		p, err := place.New(args[0], opts...)
		if err != nil {
			return err
		}
		if err := applyThresholds(cmd, p); err != nil {
			return err
		}

		switch mode {
		case "text":
			err = p.TextSearch(ctx, place.TextSearchOptions{
				Location: location,
				Radius:   radius,
				Type:     searchType,
			})
		case "find":
			err = p.FindPlace(ctx, place.FindPlaceOptions{
				Location: location,
				Radius:   radius,
			})
		case "auto":
			err = p.Autocomplete(ctx, place.AutocompleteOptions{})
		case "radar":
			if radius == 0 {
				radius = defaultRadarRadius
			}
			hits, radarErr := p.Radar(ctx, place.RadarOptions{
				Radius:  radius,
				Keyword: keyword,
				Type:    searchType,
			})
			if radarErr != nil {
				return radarErr
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(hits)
		default:
			return eris.Errorf("unknown search mode %q (want text, find, auto or radar)", mode)
		}
		if err != nil {
			return err
		}

		p.Check()
		return emitPlace(cmd, p)
	},
}

func init() {
	addResolveFlags(searchCmd)
	addHintFlags(searchCmd)
	f := searchCmd.Flags()
	f.String("mode", "text", "search mode: text, find, auto or radar")
	f.String("type", "", "restrict results to a place type (e.g. supermarket)")
	f.Int("radius", 0, "search radius in meters")
	f.Float64("lat", 0, "bias latitude")
	f.Float64("lng", 0, "bias longitude")
	f.String("keyword", "", "keyword filter for radar mode")
	rootCmd.AddCommand(searchCmd)
}

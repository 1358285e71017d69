package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jvigneron-hub/gistools/pkg/geometry"
	"github.com/jvigneron-hub/gistools/pkg/place"
)

var reverseCmd = &cobra.Command{
	Use:   "reverse LAT LNG",
	Short: "Resolve a coordinate into an address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("resolve"); err != nil {
			return err
		}

		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Errorf("invalid latitude %q", args[0])
		}
		lng, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return eris.Errorf("invalid longitude %q", args[1])
		}
		if err := checkCoordinate(lat, lng); err != nil {
			return err
		}

		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}
		opts = append(opts, place.WithClient(initMapsClient()))

		p, err := place.New(geometry.Coordinate{Lat: lat, Lng: lng}, opts...)
		if err != nil {
			return err
		}

		if err := p.ReverseGeocode(ctx, place.ReverseGeocodeOptions{}); err != nil {
			return err
		}

		return emitPlace(cmd, p)
	},
}

func init() {
	addResolveFlags(reverseCmd)
	rootCmd.AddCommand(reverseCmd)
}

func checkCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return eris.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return eris.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

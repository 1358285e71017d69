package main

import (
	"github.com/spf13/cobra"

	"github.com/jvigneron-hub/gistools/pkg/place"
)

var detailsCmd = &cobra.Command{
	Use:   "details PLACE_ID",
	Short: "Fetch the full record of a place by its ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("resolve"); err != nil {
			return err
		}

		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}
		opts = append(opts, place.WithClient(initMapsClient()))

		p, err := place.New(args[0], opts...)
		if err != nil {
			return err
		}

		if err := p.PlaceDetails(ctx, place.PlaceDetailsOptions{}); err != nil {
			return err
		}

		return emitPlace(cmd, p)
	},
}

func init() {
	addResolveFlags(detailsCmd)
	rootCmd.AddCommand(detailsCmd)
}

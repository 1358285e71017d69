package main

import (
	"github.com/spf13/cobra"

	"github.com/jvigneron-hub/gistools/pkg/place"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode \"QUERY\"",
	Short: "Resolve a free-text address or phone number",
	Long:  "Geocodes the query, selects the best candidate, scores it against any hints, and applies the acceptance rules. Numeric queries are looked up as phone numbers.",
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
		opts = append(opts,
			place.WithClient(initMapsClient()),
			place.WithHints(hintsFromFlags(cmd)),
		)

		p, err := place.New(args[0], opts...)
		if err != nil {
			return err
		}
		if err := applyThresholds(cmd, p); err != nil {
			return err
		}

		if err := p.Geocode(ctx, place.GeocodeOptions{}); err != nil {
			return err
		}
		if lcs, _ := cmd.Flags().GetBool("lcs"); lcs {
			p.CompareWith(p.Hints(), true)
		}
		p.Check()

		return emitPlace(cmd, p)
	},
}

func init() {
	addResolveFlags(geocodeCmd)
	addHintFlags(geocodeCmd)
	rootCmd.AddCommand(geocodeCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jvigneron-hub/gistools/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "gistools",
	Short: "Geocoding and place reconciliation toolkit",
	Long:  "Resolves free-form place descriptions through the Google Maps web services, scores the results against caller hints, and batch-geocodes CSV and XLSX datasets with a persistent response cache.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jvigneron-hub/gistools/internal/store"
	"github.com/jvigneron-hub/gistools/pkg/gmaps"
	"github.com/jvigneron-hub/gistools/pkg/place"
)

// addResolveFlags registers the flags shared by the one-shot resolution
// commands. Unset flags fall back to the configured profile.
func addResolveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("business", false, "enrich the result with place details")
	f.String("language", "", "response language (e.g. fr, en)")
	f.StringSlice("components", nil, "geocoder component filter as key=value, repeatable")
	f.StringSlice("threshold", nil, "acceptance threshold override as key=value (threshold, threshold_on_name, threshold_on_addr, threshold_on_city, threshold_on_postal_code)")
	f.Bool("lcs", false, "rescore confidences with the subsequence metric")
	f.Bool("json", false, "print the resolved record as JSON")
	f.Bool("all", false, "print the full record breakdown")
	f.String("id", "", "caller-side identifier carried into the output")
	f.String("profile", "", "YAML resolution profile replacing the configured defaults")
}

// addHintFlags registers the scoring hint flags.
func addHintFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("name", "", "expected place name, scored against the result")
	f.String("address", "", "expected street address, scored against the result")
	f.String("city", "", "expected city, scored against the result")
	f.String("postal-code", "", "expected postal code, scored against the result")
	f.String("country", "", "expected country, scored against the result")
}

// resolveOptions renders the resolution profile plus any flag overrides
// as place constructor options. A --profile file replaces the configured
// defaults entirely; individual flags still win over both.
func resolveOptions(cmd *cobra.Command) ([]place.Option, error) {
	f := cmd.Flags()

	opts := cfg.PlaceOptions()
	if path, _ := f.GetString("profile"); path != "" {
		prof, err := place.LoadProfile(path)
		if err != nil {
			return nil, err
		}
		opts = prof.Options()
	}

	if f.Changed("business") {
		b, _ := f.GetBool("business")
		opts = append(opts, place.WithBusiness(b))
	}
	if f.Changed("language") {
		lang, _ := f.GetString("language")
		opts = append(opts, place.WithLanguage(lang))
	}
	if f.Changed("components") {
		vals, _ := f.GetStringSlice("components")
		components, err := parsePairs(vals)
		if err != nil {
			return nil, err
		}
		opts = append(opts, place.WithComponents(components))
	}
	if id, _ := f.GetString("id"); id != "" {
		opts = append(opts, place.WithID(id))
	}

	return opts, nil
}

// applyThresholds applies any --threshold overrides to the place.
func applyThresholds(cmd *cobra.Command, p *place.Place) error {
	vals, _ := cmd.Flags().GetStringSlice("threshold")
	if len(vals) == 0 {
		return nil
	}

	overrides := make(map[string]float64, len(vals))
	for _, kv := range vals {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return eris.Errorf("invalid threshold %q, want key=value", kv)
		}
		fv, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return eris.Errorf("invalid threshold value %q for %s", v, k)
		}
		overrides[strings.TrimSpace(k)] = fv
	}
	return p.SetThresholds(overrides)
}

// hintsFromFlags collects the scoring hints given on the command line.
func hintsFromFlags(cmd *cobra.Command) place.Hints {
	f := cmd.Flags()
	h := place.Hints{}
	h.Name, _ = f.GetString("name")
	h.Address, _ = f.GetString("address")
	h.City, _ = f.GetString("city")
	h.PostalCode, _ = f.GetString("postal-code")
	h.Country, _ = f.GetString("country")
	return h
}

// parsePairs parses repeated key=value flag values into a map.
func parsePairs(vals []string) (map[string]string, error) {
	m := make(map[string]string, len(vals))
	for _, kv := range vals {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, eris.Errorf("invalid component %q, want key=value", kv)
		}
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m, nil
}

// emitPlace prints the resolution result, honoring --json and --all.
func emitPlace(cmd *cobra.Command, p *place.Place) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p.Record())
	}
	p.Describe(os.Stdout, all)
	return nil
}

// initMapsClient builds the Maps client from the configured credentials.
func initMapsClient() gmaps.Client {
	opts := []gmaps.Option{
		gmaps.WithLanguage(cfg.Google.Language),
		gmaps.WithRegion(cfg.Google.Region),
		gmaps.WithQPS(cfg.Google.QPS),
	}
	if cfg.Google.BaseURL != "" {
		opts = append(opts, gmaps.WithBaseURL(cfg.Google.BaseURL))
	}
	return gmaps.NewClient(cfg.Google.Key, opts...)
}

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
}

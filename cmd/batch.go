package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jvigneron-hub/gistools/internal/dataset"
	"github.com/jvigneron-hub/gistools/internal/store"
	"github.com/jvigneron-hub/gistools/pkg/gmaps"
	"github.com/jvigneron-hub/gistools/pkg/place"
)

var (
	batchInput      string
	batchOutput     string
	batchLimit      int
	batchSheet      string
	batchSheetIndex int
	batchSkipRows   int
	batchDelimiter  string
	batchCharset    string
	batchNoCache    bool
	batchCacheTTL   time.Duration
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Geocode a CSV or XLSX dataset",
	Long:  "Reads place rows from a local file or URL, resolves each through the geocoder with cached responses replayed from the store, and writes the scored records as CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		inputs, err := readDataset(ctx, batchInput)
		if err != nil {
			return err
		}

		client := initMapsClient()

		run, err := st.CreateRun(ctx, batchInput)
		if err != nil {
			return eris.Wrap(err, "create run")
		}
		zap.L().Info("run started",
			zap.String("run_id", run.ID),
			zap.String("source", batchInput),
			zap.Int("rows", len(inputs)),
		)

		started := time.Now()
		results, tally, err := processBatch(ctx, inputs, batchLimit, cfg.Batch.Workers, func(ctx context.Context, in dataset.Input) (*place.Record, bool, error) {
			return resolveInput(ctx, st, client, in)
		})
		if err != nil {
			_ = st.FailRun(ctx, run.ID, err.Error())
			return err
		}

		if err := writeResults(batchOutput, results); err != nil {
			_ = st.FailRun(ctx, run.ID, err.Error())
			return err
		}

		result := &store.RunResult{
			Total:    len(results),
			Resolved: tally.Resolved,
			Accepted: tally.Accepted,
			Cached:   tally.Cached,
			Failed:   tally.Failed,
			Duration: time.Since(started).Seconds(),
			Output:   batchOutput,
		}
		if err := st.FinishRun(ctx, run.ID, result); err != nil {
			return eris.Wrap(err, "finish run")
		}

		zap.L().Info("batch complete",
			zap.String("run_id", run.ID),
			zap.Int("total", result.Total),
			zap.Int("resolved", result.Resolved),
			zap.Int("accepted", result.Accepted),
			zap.Int("cached", result.Cached),
			zap.Int("failed", result.Failed),
			zap.Float64("duration_seconds", result.Duration),
		)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "dataset path or URL, CSV or XLSX (required)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output CSV path (default stdout)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of rows to process (0 = all)")
	batchCmd.Flags().StringVar(&batchSheet, "sheet", "", "XLSX sheet name (default first sheet)")
	batchCmd.Flags().IntVar(&batchSheetIndex, "sheet-index", 0, "XLSX sheet index")
	batchCmd.Flags().IntVar(&batchSkipRows, "skip-rows", 0, "rows to skip before the header")
	batchCmd.Flags().StringVar(&batchDelimiter, "delimiter", "", "CSV field delimiter (default comma)")
	batchCmd.Flags().StringVar(&batchCharset, "charset", "", "CSV character set (e.g. windows-1252)")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "skip the response cache")
	batchCmd.Flags().DurationVar(&batchCacheTTL, "cache-ttl", 720*time.Hour, "lifetime of cached responses")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

// resolveFunc resolves one dataset row into a record. The boolean
// reports whether the resolution was served from the cache.
type resolveFunc func(ctx context.Context, in dataset.Input) (*place.Record, bool, error)

// batchTally counts row outcomes across a batch.
type batchTally struct {
	Resolved int
	Accepted int
	Cached   int
	Failed   int
}

// processBatch applies limit, then resolves rows concurrently. Row
// failures are recorded in the results and never abort the batch;
// results keep the input order.
func processBatch(ctx context.Context, inputs []dataset.Input, limit, concurrency int, resolve resolveFunc) ([]dataset.Result, batchTally, error) {
	if limit > 0 && len(inputs) > limit {
		inputs = inputs[:limit]
	}

	results := make([]dataset.Result, len(inputs))
	if len(inputs) == 0 {
		zap.L().Info("no rows to process")
		return results, batchTally{}, nil
	}

	zap.L().Info("processing batch",
		zap.Int("rows", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var resolved, accepted, cached, failed atomic.Int64

	for i, in := range inputs {
		g.Go(func() error {
			log := zap.L().With(zap.String("id", in.ID), zap.String("query", in.Query))

			rec, hit, err := resolve(gctx, in)
			if err != nil {
				failed.Add(1)
				log.Warn("row failed", zap.Error(err))
				results[i] = dataset.Result{Input: in, Err: err.Error()}
				return nil // row failures are recorded, not fatal
			}

			resolved.Add(1)
			if hit {
				cached.Add(1)
			}
			if rec.Accepted {
				accepted.Add(1)
			}
			results[i] = dataset.Result{Input: in, Record: rec}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, batchTally{}, eris.Wrap(err, "process batch")
	}

	tally := batchTally{
		Resolved: int(resolved.Load()),
		Accepted: int(accepted.Load()),
		Cached:   int(cached.Load()),
		Failed:   int(failed.Load()),
	}
	return results, tally, nil
}

// resolveInput geocodes one dataset row. Cached responses are replayed
// through the regular parse path; live responses are cached for the
// configured lifetime. Cache failures degrade to live calls.
func resolveInput(ctx context.Context, st store.Store, client gmaps.Client, in dataset.Input) (*place.Record, bool, error) {
	opts := append(cfg.PlaceOptions(),
		place.WithClient(client),
		place.WithID(in.ID),
		place.WithHints(in.Hints()),
	)
	p, err := place.New(nil, opts...)
	if err != nil {
		return nil, false, err
	}
	if p.Query() == "" {
		p.BuildQuery(in.Name, in.Addr, in.PostalCode, in.City)
	}
	if p.Query() == "" {
		return nil, false, eris.New("empty query")
	}

	useCache := cfg.Batch.Cache && !batchNoCache
	key := cacheKeyFor(p.Query())

	var replay *place.Responses
	if useCache {
		cached, err := st.GetResponses(ctx, key)
		if err != nil {
			zap.L().Warn("cache read failed", zap.String("query", p.Query()), zap.Error(err))
		} else {
			replay = cached
		}
	}

	if err := p.Geocode(ctx, place.GeocodeOptions{Replay: replay}); err != nil {
		return nil, false, err
	}
	p.Check()

	if useCache && replay == nil {
		resp := p.Responses()
		if err := st.PutResponses(ctx, key, "geocode", &resp, batchCacheTTL); err != nil {
			zap.L().Warn("cache write failed", zap.String("query", p.Query()), zap.Error(err))
		}
	}

	return p.Record(), replay != nil, nil
}

// cacheKeyFor derives the cache key of a query under the configured
// component filter and language. Keys are sorted so equal filters hash
// equally.
func cacheKeyFor(query string) string {
	parts := []string{query}

	keys := make([]string, 0, len(cfg.Place.Components))
	for k := range cfg.Place.Components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+cfg.Place.Components[k])
	}

	parts = append(parts, cfg.Google.Language)
	return store.CacheKey("geocode", parts...)
}

// readDataset loads rows from a local path or URL, dispatching on the
// file extension. XLSX sources are downloaded to a temporary file
// first; the workbook reader wants a seekable file.
func readDataset(ctx context.Context, source string) ([]dataset.Input, error) {
	ext := strings.ToLower(filepath.Ext(source))
	if ext == ".xlsx" || ext == ".xls" {
		path := source
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "ftp://") {
			tmp, err := os.CreateTemp("", "gistools-*"+ext)
			if err != nil {
				return nil, eris.Wrap(err, "create temp file")
			}
			_ = tmp.Close()
			defer os.Remove(tmp.Name()) //nolint:errcheck
			if _, err := dataset.Download(ctx, source, tmp.Name()); err != nil {
				return nil, err
			}
			path = tmp.Name()
		}
		return dataset.ReadXLSX(path, dataset.XLSXOptions{
			SheetName:  batchSheet,
			SheetIndex: batchSheetIndex,
			SkipRows:   batchSkipRows,
		})
	}

	r, err := dataset.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck

	copts := dataset.CSVOptions{Charset: batchCharset}
	if batchDelimiter != "" {
		d, _ := utf8.DecodeRuneInString(batchDelimiter)
		copts.Delimiter = d
	}
	return dataset.ReadCSV(ctx, r, copts)
}

// writeResults writes the batch output, to stdout when no path is
// given.
func writeResults(path string, results []dataset.Result) error {
	if path == "" || path == "-" {
		return dataset.WriteCSV(os.Stdout, results)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := dataset.WriteCSV(f, results); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "close %s", path)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jvigneron-hub/gistools/pkg/geometry"
	"github.com/jvigneron-hub/gistools/pkg/gmaps"
	"github.com/jvigneron-hub/gistools/pkg/place"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the geocoding HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		router := buildRouter(initMapsClient(), cfg.PlaceOptions())

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter assembles the API routes. base is the resolution profile
// applied to every request before its own overrides.
func buildRouter(client gmaps.Client, base []place.Option) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/geocode", handleGeocode(client, base))
	r.Post("/v1/reverse", handleReverse(client, base))

	return r
}

// geocodeRequest is the body of POST /v1/geocode. The embedded hints
// contribute the scoring references; query takes precedence over the
// hint text.
type geocodeRequest struct {
	place.Hints
	Query    string `json:"query"`
	Business *bool  `json:"business,omitempty"`
	Language string `json:"language,omitempty"`
}

func handleGeocode(client gmaps.Client, base []place.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req geocodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Query == "" {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}

		opts := requestOptions(client, base, req.Business, req.Language)
		opts = append(opts, place.WithHints(req.Hints))

		p, err := place.New(req.Query, opts...)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := p.Geocode(r.Context(), place.GeocodeOptions{}); err != nil {
			zap.L().Error("geocode failed", zap.String("query", req.Query), zap.Error(err))
			writeError(w, http.StatusBadGateway, "geocode failed")
			return
		}
		p.Check()

		writeJSON(w, http.StatusOK, p.Record())
	}
}

// reverseRequest is the body of POST /v1/reverse. Lat and lng are
// pointers so a missing coordinate is told apart from zero.
type reverseRequest struct {
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Business *bool    `json:"business,omitempty"`
	Language string   `json:"language,omitempty"`
}

func handleReverse(client gmaps.Client, base []place.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reverseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Lat == nil || req.Lng == nil {
			writeError(w, http.StatusBadRequest, "lat and lng are required")
			return
		}
		if err := checkCoordinate(*req.Lat, *req.Lng); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		opts := requestOptions(client, base, req.Business, req.Language)

		p, err := place.New(geometry.Coordinate{Lat: *req.Lat, Lng: *req.Lng}, opts...)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := p.ReverseGeocode(r.Context(), place.ReverseGeocodeOptions{}); err != nil {
			zap.L().Error("reverse geocode failed",
				zap.Float64("lat", *req.Lat),
				zap.Float64("lng", *req.Lng),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, "reverse geocode failed")
			return
		}

		writeJSON(w, http.StatusOK, p.Record())
	}
}

// requestOptions copies the base profile and layers the per-request
// overrides on top. The copy keeps concurrent requests from appending
// into a shared backing array.
func requestOptions(client gmaps.Client, base []place.Option, business *bool, language string) []place.Option {
	opts := make([]place.Option, 0, len(base)+3)
	opts = append(opts, base...)
	opts = append(opts, place.WithClient(client))
	if business != nil {
		opts = append(opts, place.WithBusiness(*business))
	}
	if language != "" {
		opts = append(opts, place.WithLanguage(language))
	}
	return opts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

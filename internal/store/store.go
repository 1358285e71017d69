// Package store persists batch geocoding runs and cached API responses.
package store

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jvigneron-hub/gistools/pkg/place"
)

// RunStatus tracks the lifecycle of a batch geocoding run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one batch geocoding execution over an input dataset.
type Run struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult summarizes the outcome of a completed run.
type RunResult struct {
	Total    int     `json:"total"`
	Resolved int     `json:"resolved"`
	Accepted int     `json:"accepted"`
	Cached   int     `json:"cached"`
	Failed   int     `json:"failed"`
	Duration float64 `json:"duration_seconds"`
	Output   string  `json:"output,omitempty"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status RunStatus `json:"status,omitempty"`
	Source string    `json:"source,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

// Store defines the persistence interface for batch geocoding.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, source string) (*Run, error)
	FinishRun(ctx context.Context, runID string, result *RunResult) error
	FailRun(ctx context.Context, runID string, cause string) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	// Response cache
	GetResponses(ctx context.Context, queryHash string) (*place.Responses, error)
	PutResponses(ctx context.Context, queryHash, strategy string, responses *place.Responses, ttl time.Duration) error
	DeleteExpiredResponses(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL, nil)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
}

// CacheKey derives a stable cache identity from a strategy name and the
// request inputs that determine the API response. Inputs are normalized so
// that casing and stray whitespace do not fragment the cache.
func CacheKey(strategy string, parts ...string) string {
	fields := make([]string, 0, len(parts)+1)
	fields = append(fields, strings.ToLower(strings.TrimSpace(strategy)))
	for _, p := range parts {
		fields = append(fields, strings.ToLower(strings.TrimSpace(p)))
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return fmt.Sprintf("%x", sum)
}

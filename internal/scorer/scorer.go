package scorer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dshills/smekit/internal/schema"
)

// sharedHTTPClient is used by the HTTP scorer; model backends can be slow.
var sharedHTTPClient = &http.Client{
	Timeout: 2 * time.Minute,
}

// Request is the payload sent to a scoring backend.
type Request struct {
	ProfileData schema.Profile `json:"profile_data"`
	MLFeatures  map[string]any `json:"ml_features"`
}

// Response holds the scores returned by a backend.
type Response struct {
	ComplianceScore int
	LatestScore     int // most recent point of the historical series
	Model           string
}

// Scorer is the interface for compliance scoring backends.
type Scorer interface {
	Score(ctx context.Context, req *Request) (*Response, error)
}

// Config selects and configures a Scorer.
type Config struct {
	Kind  string        // "mock" or "http"
	URL   string        // endpoint for the http scorer
	Delay time.Duration // simulated latency for the mock scorer
	Seed  int64         // mock RNG seed; 0 seeds from the clock
}

// New returns the Scorer described by cfg.
func New(cfg Config) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", "mock":
		return NewMock(cfg.Seed, cfg.Delay), nil
	case "http":
		if strings.TrimSpace(cfg.URL) == "" {
			return nil, fmt.Errorf("http scorer requires a URL (SMEKIT_SCORER_URL)")
		}
		return &httpScorer{url: cfg.URL, client: sharedHTTPClient}, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q: supported scorers are mock, http", cfg.Kind)
	}
}

// truncate limits a string to maxLen runes, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

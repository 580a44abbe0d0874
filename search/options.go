package search

import (
	"log/slog"

	"github.com/jonwraymond/docsearch/metrics"
)

// Option configures an Index.
type Option func(*indexConfig)

type indexConfig struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	maxResults int
	minScore   float64
}

// WithLogger sets the logger used during index construction.
// A nil logger falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *indexConfig) {
		c.logger = logger
	}
}

// WithMetrics records build and query metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *indexConfig) {
		c.metrics = m
	}
}

// WithMaxResults caps the number of results per query. Zero means unlimited.
func WithMaxResults(n int) Option {
	return func(c *indexConfig) {
		if n < 0 {
			n = 0
		}
		c.maxResults = n
	}
}

// WithMinScore drops hits scoring below minScore. Zero keeps every hit.
func WithMinScore(minScore float64) Option {
	return func(c *indexConfig) {
		if minScore < 0 {
			minScore = 0
		}
		c.minScore = minScore
	}
}

func applyOptions(opts []Option) indexConfig {
	cfg := indexConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

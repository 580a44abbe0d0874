package dropdown

import (
	"log/slog"

	"github.com/jonwraymond/docsearch/metrics"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger. A nil logger falls back to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records transitions, queries, and navigation on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithRetainedKeyListeners keeps the key-down and key-up listeners attached
// after the dropdown closes. By default all three listeners are detached on
// close.
func WithRetainedKeyListeners(retain bool) Option {
	return func(c *Controller) {
		c.retainKeys = retain
	}
}

package premium

import "log/slog"

// DefaultMaxAttempts is the retry budget handed to Provider.FetchPlacements.
const DefaultMaxAttempts = 10

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithDispatcher replaces the default serialising dispatcher, for example
// with one that hops onto an application's main loop. Nil is ignored.
func WithDispatcher(d Dispatcher) Option {
	return func(m *Manager) {
		if d != nil {
			m.dispatcher = d
		}
	}
}

// WithMaxAttempts sets the placements fetch retry budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

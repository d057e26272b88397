package httpserver

import (
	"log/slog"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStartHook registers fn to run with the bound address once the server
// is listening.
func WithStartHook(fn func(addr string)) Option {
	if fn == nil {
		panic("WithStartHook: nil hook")
	}
	return func(s *Server) { s.startHooks = append(s.startHooks, fn) }
}

// WithStopHook registers fn to run after the server shut down.
func WithStopHook(fn func()) Option {
	if fn == nil {
		panic("WithStopHook: nil hook")
	}
	return func(s *Server) { s.stopHooks = append(s.stopHooks, fn) }
}

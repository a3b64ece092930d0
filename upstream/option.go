package upstream

import (
	"github.com/rs/zerolog"
	sse "github.com/viant/jsonrpc/transport/client/http/sse"
)

// Option represents manager option
type Option func(m *Manager)

// WithDialer replaces the SSE dialer
func WithDialer(dial Dialer) Option {
	return func(m *Manager) {
		m.dial = dial
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSSEOptions passes options to the default SSE dialer
func WithSSEOptions(options ...sse.Option) Option {
	return func(m *Manager) {
		m.sseOptions = append(m.sseOptions, options...)
	}
}

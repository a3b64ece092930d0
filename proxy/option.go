package proxy

import "github.com/rs/zerolog"

// Option represents forwarder option
type Option func(f *Forwarder)

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Forwarder) {
		f.logger = logger
	}
}

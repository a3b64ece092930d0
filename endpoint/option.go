package endpoint

import (
	"io"

	"github.com/rs/zerolog"
)

// Option represents endpoint option
type Option func(e *Endpoint)

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Endpoint) {
		e.logger = logger
	}
}

// WithReader replaces stdin
func WithReader(reader io.Reader) Option {
	return func(e *Endpoint) {
		e.reader = reader
	}
}

// WithWriter replaces stdout
func WithWriter(writer io.Writer) Option {
	return func(e *Endpoint) {
		e.writer = writer
	}
}

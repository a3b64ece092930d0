package auth

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Option represents authenticator option
type Option func(a *Authenticator)

// WithHTTPClient sets the http client used for the exchange
func WithHTTPClient(client *http.Client) Option {
	return func(a *Authenticator) {
		a.client = client
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

package bridge

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/viant/hubbridge/endpoint"
	"github.com/viant/hubbridge/upstream"
)

// Option represents service option
type Option func(s *Service)

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHTTPClient sets the client used for authentication and the upstream stream
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithUpstreamOptions passes options to the upstream session manager
func WithUpstreamOptions(options ...upstream.Option) Option {
	return func(s *Service) {
		s.upstreamOptions = append(s.upstreamOptions, options...)
	}
}

// WithEndpointOptions passes options to the local endpoint
func WithEndpointOptions(options ...endpoint.Option) Option {
	return func(s *Service) {
		s.endpointOptions = append(s.endpointOptions, options...)
	}
}

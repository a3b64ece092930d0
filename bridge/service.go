package bridge

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/viant/hubbridge/auth"
	"github.com/viant/hubbridge/endpoint"
	"github.com/viant/hubbridge/fault"
	"github.com/viant/hubbridge/proxy"
	"github.com/viant/hubbridge/upstream"
	"github.com/viant/jsonrpc"
	sse "github.com/viant/jsonrpc/transport/client/http/sse"
)

// Service represents a connected bridge
type Service struct {
	options         *Options
	logger          zerolog.Logger
	httpClient      *http.Client
	upstreamOptions []upstream.Option
	endpointOptions []endpoint.Option
	manager         *upstream.Manager
	session         *upstream.Session
	endpoint        *endpoint.Endpoint
}

// Session returns the upstream session
func (s *Service) Session() *upstream.Session {
	return s.session
}

// Endpoint returns the local endpoint
func (s *Service) Endpoint() *endpoint.Endpoint {
	return s.endpoint
}

// Serve serves the stdio endpoint until stdin is closed or ctx is done.
func (s *Service) Serve(ctx context.Context) error {
	server := s.endpoint.Stdio(ctx)
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe()
	}()
	s.logger.Info().Str("session", s.session.Name()).Msg("serving stdio")
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
			s.logger.Error().Err(err).Str("op", "serve").Msg("stdio server failed")
			return err
		}
		s.logger.Info().Msg("local transport closed")
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down")
	}
	return nil
}

// Close disconnects the upstream session
func (s *Service) Close() error {
	return s.manager.Disconnect(s.session)
}

// New validates options, authenticates and connects upstream. Nothing is served yet.
func New(ctx context.Context, options *Options, opts ...Option) (*Service, error) {
	ret := &Service{options: options, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(ret)
	}
	if err := options.Validate(); err != nil {
		ret.logger.Error().Err(err).Str("op", "configure").Str("kind", fault.KindOf(err).String()).Msg("startup failed")
		return nil, err
	}
	authOptions := []auth.Option{auth.WithLogger(ret.logger)}
	upstreamOptions := []upstream.Option{
		upstream.WithLogger(ret.logger),
		upstream.WithSSEOptions(sse.WithListener(func(message *jsonrpc.Message) {
			ret.logger.Trace().Interface("message", message).Msg("upstream message")
		})),
	}
	if ret.httpClient != nil {
		authOptions = append(authOptions, auth.WithHTTPClient(ret.httpClient))
		upstreamOptions = append(upstreamOptions, upstream.WithSSEOptions(sse.WithHttpClient(ret.httpClient), sse.WithMessageHttpClient(ret.httpClient)))
	}

	credential, err := auth.New(authOptions...).Authenticate(ctx, options.Token, options.URL)
	if err != nil {
		return nil, err
	}
	ret.manager = upstream.NewManager(append(upstreamOptions, ret.upstreamOptions...)...)
	if ret.session, err = ret.manager.Connect(ctx, credential, options.URL); err != nil {
		return nil, err
	}
	forwarder := proxy.New(ret.session, proxy.WithLogger(ret.logger))
	ret.endpoint = endpoint.New(forwarder, append([]endpoint.Option{endpoint.WithLogger(ret.logger)}, ret.endpointOptions...)...)
	return ret, nil
}

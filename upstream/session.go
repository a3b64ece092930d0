package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/viant/hubbridge/fault"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Validator is implemented by result shapes that check their own conformance.
type Validator interface {
	Validate() error
}

// Session represents an open upstream connection
type Session struct {
	name      string
	endpoint  string
	channel   transport.Transport
	server    *schema.InitializeResult
	cancel    context.CancelFunc
	closed    atomic.Bool
	closeOnce sync.Once
}

// Name returns the session identity label
func (s *Session) Name() string {
	return s.name
}

// Endpoint returns the streaming address with the credential redacted
func (s *Session) Endpoint() string {
	return s.endpoint
}

// Server returns the upstream initialize result, nil before the handshake completes
func (s *Session) Server() *schema.InitializeResult {
	return s.server
}

// Open reports whether the session can carry requests
func (s *Session) Open() bool {
	return s != nil && s.channel != nil && !s.closed.Load()
}

// Close tears down the channel. It is safe to call more than once, and on a nil session.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.cancel != nil {
			s.cancel()
		}
		if closer, ok := s.channel.(io.Closer); ok {
			err = closer.Close()
		}
	})
	return err
}

// Notify sends a notification upstream
func (s *Session) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	if !s.Open() {
		return fault.ErrNotConnected
	}
	return s.channel.Notify(ctx, notification)
}

// Request sends method with params over the session and decodes the result into R.
// Upstream JSON-RPC errors are returned as *jsonrpc.Error, unchanged.
func Request[R any](ctx context.Context, session *Session, method string, params interface{}) (*R, error) {
	if !session.Open() {
		return nil, fault.ErrNotConnected
	}
	req, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return nil, jsonrpc.NewInvalidRequest(err.Error(), nil)
	}
	response, err := session.channel.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, fmt.Errorf("%v: no response", method)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	var result R
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return nil, fmt.Errorf("invalid %v result: %w", method, err)
	}
	if validator, ok := any(&result).(Validator); ok {
		if err = validator.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %v result: %w", method, err)
		}
	}
	return &result, nil
}

// NewSession wraps an already connected channel; name labels the session in logs.
func NewSession(name string, channel transport.Transport) *Session {
	return newSession(name, "", channel, nil)
}

func newSession(name, endpoint string, channel transport.Transport, cancel context.CancelFunc) *Session {
	return &Session{name: name, endpoint: endpoint, channel: channel, cancel: cancel}
}

package endpoint

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/viant/hubbridge/internal/collection"
	"github.com/viant/hubbridge/proxy"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/server/base"
	"github.com/viant/mcp-protocol/schema"
)

// Endpoint represents the local side of the bridge
type Endpoint struct {
	forwarder       *proxy.Forwarder
	info            schema.Implementation
	capabilities    schema.ServerCapabilities
	protocolVersion string
	logger          zerolog.Logger
	active          *collection.SyncMap[string, context.CancelFunc]
	reader          io.Reader
	writer          io.Writer
}

// NewHandler creates a handler for a local transport connection
func (e *Endpoint) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return &Handler{Endpoint: e}
}

// Stdio returns a server over stdin and stdout, or the reader and writer set by options.
func (e *Endpoint) Stdio(ctx context.Context) *Server {
	handler := base.NewHandler()
	handler.Logger = &errorLogger{logger: e.logger}
	session := base.NewSession(ctx, sessionKey, e.writer, e.NewHandler, base.WithFramer(frameLine))
	handler.Sessions.Put(sessionKey, session)
	return &Server{
		endpoint: e,
		handler:  handler,
		session:  session,
		reader:   bufio.NewReader(e.reader),
		ctx:      ctx,
	}
}

// InFlight returns the number of requests being served
func (e *Endpoint) InFlight() int {
	return e.active.Len()
}

func (e *Endpoint) track(key string, cancel context.CancelFunc) {
	e.active.Put(key, cancel)
}

func (e *Endpoint) release(key string) {
	if cancel, ok := e.active.Take(key); ok {
		cancel()
	}
}

// New creates an endpoint dispatching to forwarder
func New(forwarder *proxy.Forwarder, options ...Option) *Endpoint {
	ret := &Endpoint{
		forwarder:       forwarder,
		info:            *schema.NewImplementation(ServerName, ServerVersion),
		capabilities:    Capabilities(),
		protocolVersion: schema.LatestProtocolVersion,
		logger:          zerolog.Nop(),
		active:          collection.NewSyncMap[string, context.CancelFunc](),
		reader:          os.Stdin,
		writer:          os.Stdout,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	afsurl "github.com/viant/afs/url"
	"github.com/viant/hubbridge/auth"
	"github.com/viant/hubbridge/fault"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	sse "github.com/viant/jsonrpc/transport/client/http/sse"
	"github.com/viant/mcp-protocol/schema"
)

const (
	// ClientName identifies the bridge to the resource hub during the handshake.
	ClientName = "resource-hub-client"
	// ClientVersion is advertised together with ClientName.
	ClientVersion = "1.0.0"
	// StreamPath is the streaming transport sub-path.
	StreamPath = "sse"
	// TokenParam is the query parameter carrying the session credential.
	TokenParam = "token"

	opConnect    = "connect"
	opDisconnect = "disconnect"
	redacted     = "REDACTED"
)

var errMissingSessionToken = errors.New("session credential is required")

// handshakeCapabilities are advertised to the resource hub during initialize.
var handshakeCapabilities = json.RawMessage(`{"prompts":{},"resources":{"subscribe":true},"tools":{}}`)

type initializeParams struct {
	Capabilities    json.RawMessage       `json:"capabilities"`
	ClientInfo      schema.Implementation `json:"clientInfo"`
	ProtocolVersion string                `json:"protocolVersion"`
}

// Dialer opens the duplex channel at endpoint; the channel lives until ctx is done.
type Dialer func(ctx context.Context, endpoint string) (transport.Transport, error)

// Manager establishes and tears down upstream sessions
type Manager struct {
	dial            Dialer
	name            string
	version         string
	protocolVersion string
	sseOptions      []sse.Option
	logger          zerolog.Logger
}

// Connect opens the streaming channel authenticated by credential and completes the handshake.
func (m *Manager) Connect(ctx context.Context, credential, baseURL string) (*Session, error) {
	endpoint, err := Endpoint(baseURL, credential)
	if err != nil {
		return nil, m.connectFailure(err, "")
	}
	label := Redact(endpoint)
	streamCtx, cancel := context.WithCancel(ctx)
	channel, err := m.dial(streamCtx, endpoint)
	if err != nil {
		cancel()
		return nil, m.connectFailure(err, label)
	}
	session := newSession(m.name, label, channel, cancel)
	result, err := m.handshake(ctx, session)
	if err != nil {
		_ = session.Close()
		return nil, m.connectFailure(err, label)
	}
	session.server = result
	m.logger.Info().Str("session", session.name).Str("url", label).
		Str("server", result.ServerInfo.Name).Str("serverVersion", result.ServerInfo.Version).
		Str("protocolVersion", result.ProtocolVersion).Msg("upstream connected")
	return session, nil
}

// Disconnect closes session; closing an already closed or nil session is a no-op.
func (m *Manager) Disconnect(session *Session) error {
	if !session.Open() {
		return nil
	}
	err := session.Close()
	if err != nil {
		m.logger.Warn().Err(err).Str("op", opDisconnect).Str("session", session.name).Msg("upstream close failed")
		return err
	}
	m.logger.Info().Str("session", session.name).Msg("upstream disconnected")
	return nil
}

func (m *Manager) handshake(ctx context.Context, session *Session) (*schema.InitializeResult, error) {
	params := &initializeParams{
		Capabilities:    handshakeCapabilities,
		ClientInfo:      *schema.NewImplementation(m.name, m.version),
		ProtocolVersion: m.protocolVersion,
	}
	result, err := Request[schema.InitializeResult](ctx, session, schema.MethodInitialize, params)
	if err != nil {
		return nil, err
	}
	if err = session.Notify(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationInitialized}); err != nil {
		return nil, fmt.Errorf("failed to notify initialized: %w", err)
	}
	return result, nil
}

func (m *Manager) connectFailure(err error, label string) error {
	m.logger.Error().Err(err).Str("op", opConnect).Str("kind", fault.KindConnect.String()).Str("url", label).Msg("upstream connect failed")
	return fault.New(fault.KindConnect, opConnect, err)
}

// Endpoint returns <baseURL>/sse?token=<credential>.
func Endpoint(baseURL, credential string) (string, error) {
	if credential == "" {
		return "", errMissingSessionToken
	}
	if baseURL == "" {
		baseURL = auth.DefaultBaseURL
	}
	u, err := url.Parse(afsurl.Join(baseURL, StreamPath))
	if err != nil {
		return "", err
	}
	query := u.Query()
	query.Set(TokenParam, credential)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Redact masks the credential in a streaming address for logging.
func Redact(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	query := u.Query()
	if query.Has(TokenParam) {
		query.Set(TokenParam, redacted)
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// SSEDialer dials with the viant/jsonrpc SSE client; handler serves server initiated requests.
func SSEDialer(handler transport.Handler, options ...sse.Option) Dialer {
	return func(ctx context.Context, endpoint string) (transport.Transport, error) {
		opts := options
		if handler != nil {
			opts = append([]sse.Option{sse.WithHandler(handler)}, options...)
		}
		client, err := sse.New(ctx, endpoint, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// NewManager creates a session manager
func NewManager(options ...Option) *Manager {
	ret := &Manager{
		name:            ClientName,
		version:         ClientVersion,
		protocolVersion: schema.LatestProtocolVersion,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.dial == nil {
		ret.dial = SSEDialer(&callbackHandler{logger: ret.logger}, ret.sseOptions...)
	}
	return ret
}

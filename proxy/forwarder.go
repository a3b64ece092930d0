package proxy

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/viant/hubbridge/fault"
	"github.com/viant/hubbridge/upstream"
	"github.com/viant/mcp-protocol/schema"
)

// Forwarder translates local requests into upstream requests on a single session.
// It never closes the session.
type Forwarder struct {
	session *upstream.Session
	logger  zerolog.Logger
}

// ListTools forwards tools/list
func (f *Forwarder) ListTools(ctx context.Context, params *ListParams) (*ListToolsResult, error) {
	result, err := forward[ListToolsResult](ctx, f, schema.MethodToolsList, listParams(params))
	if err != nil {
		return nil, err
	}
	result.normalize()
	return result, nil
}

// CallTool forwards tools/call
func (f *Forwarder) CallTool(ctx context.Context, params *CallToolParams) (*CallToolResult, error) {
	if params == nil {
		params = &CallToolParams{}
	}
	return forward[CallToolResult](ctx, f, schema.MethodToolsCall, params.forward())
}

// ListPrompts forwards prompts/list
func (f *Forwarder) ListPrompts(ctx context.Context, params *ListParams) (*ListPromptsResult, error) {
	result, err := forward[ListPromptsResult](ctx, f, schema.MethodPromptsList, listParams(params))
	if err != nil {
		return nil, err
	}
	result.normalize()
	return result, nil
}

// GetPrompt forwards prompts/get
func (f *Forwarder) GetPrompt(ctx context.Context, params *GetPromptParams) (*GetPromptResult, error) {
	if params == nil {
		params = &GetPromptParams{}
	}
	return forward[GetPromptResult](ctx, f, schema.MethodPromptsGet, params.forward())
}

// ListResources forwards resources/list; the returned result never carries a next cursor.
func (f *Forwarder) ListResources(ctx context.Context, params *ListParams) (*ListResourcesResult, error) {
	result, err := forward[ListResourcesResult](ctx, f, schema.MethodResourcesList, listParams(params))
	if err != nil {
		return nil, err
	}
	result.normalize()
	return result, nil
}

// ReadResource forwards resources/read
func (f *Forwarder) ReadResource(ctx context.Context, params *ReadResourceParams) (*ReadResourceResult, error) {
	if params == nil {
		params = &ReadResourceParams{}
	}
	return forward[ReadResourceResult](ctx, f, schema.MethodResourcesRead, params)
}

func forward[R any](ctx context.Context, f *Forwarder, method string, params interface{}) (*R, error) {
	if !f.session.Open() {
		return nil, f.failure(fault.NotConnected(method))
	}
	result, err := upstream.Request[R](ctx, f.session, method, params)
	if err != nil {
		if errors.Is(err, fault.ErrNotConnected) {
			return nil, f.failure(fault.NotConnected(method))
		}
		return nil, f.failure(fault.New(fault.KindUpstream, method, err))
	}
	return result, nil
}

func (f *Forwarder) failure(err *fault.Error) error {
	event := f.logger.Error()
	if err.Kind == fault.KindNotConnected {
		event = f.logger.Warn()
	}
	event.Err(err.Err).Str("op", err.Op).Str("kind", err.Kind.String()).Msg("request failed")
	return err
}

func listParams(params *ListParams) *ListParams {
	if params == nil {
		return &ListParams{}
	}
	return params
}

// New creates a forwarder bound to session; a nil session makes every request fail as not connected.
func New(session *upstream.Session, options ...Option) *Forwarder {
	ret := &Forwarder{session: session, logger: zerolog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

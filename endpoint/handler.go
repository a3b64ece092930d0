package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

var pingResult = json.RawMessage(`{}`)

type validator interface {
	Validate() error
}

// Handler serves one local transport connection. Cancellation contexts are
// tracked by Server before a request reaches Serve.
type Handler struct {
	*Endpoint
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	switch request.Method {
	case schema.MethodInitialize:
		result, err := h.initialize(request)
		h.setResponse(request, response, result, err)
	case schema.MethodPing:
		response.Result = pingResult
	case schema.MethodToolsList:
		serve(ctx, h, request, response, h.forwarder.ListTools)
	case schema.MethodToolsCall:
		serve(ctx, h, request, response, h.forwarder.CallTool)
	case schema.MethodPromptsList:
		serve(ctx, h, request, response, h.forwarder.ListPrompts)
	case schema.MethodPromptsGet:
		serve(ctx, h, request, response, h.forwarder.GetPrompt)
	case schema.MethodResourcesList:
		serve(ctx, h, request, response, h.forwarder.ListResources)
	case schema.MethodResourcesRead:
		serve(ctx, h, request, response, h.forwarder.ReadResource)
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCanceled, schema.MethodNotificationCancel:
		h.cancel(notification)
	case schema.MethodNotificationInitialized:
		h.logger.Debug().Msg("local client initialized")
	default:
		h.logger.Debug().Str("method", notification.Method).Msg("notification ignored")
	}
}

func (h *Handler) initialize(request *jsonrpc.Request) (*schema.InitializeResult, error) {
	params := schema.InitializeRequestParams{}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse %v", err), request.Params)
		}
	}
	h.logger.Info().Str("client", params.ClientInfo.Name).Str("clientVersion", params.ClientInfo.Version).
		Str("protocolVersion", params.ProtocolVersion).Msg("local client connected")
	return &schema.InitializeResult{
		ProtocolVersion: h.protocolVersion,
		ServerInfo:      h.info,
		Capabilities:    h.capabilities,
	}, nil
}

func (h *Handler) cancel(notification *jsonrpc.Notification) {
	params := struct {
		RequestId json.RawMessage `json:"requestId"`
	}{}
	if err := json.Unmarshal(notification.Params, &params); err != nil || len(params.RequestId) == 0 {
		h.logger.Warn().Str("op", notification.Method).RawJSON("params", validJSON(notification.Params)).Msg("invalid cancellation")
		return
	}
	key := compact(params.RequestId)
	if cancel, ok := h.active.Get(key); ok {
		cancel()
		h.logger.Debug().Str("requestId", key).Msg("request cancelled")
	}
}

func (h *Handler) setResponse(request *jsonrpc.Request, response *jsonrpc.Response, result interface{}, err error) {
	if err != nil {
		response.Error = asRPCError(err)
		return
	}
	if response.Result, err = json.Marshal(result); err != nil {
		h.logger.Error().Err(err).Str("op", request.Method).Msg("failed to encode result")
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
	}
}

func serve[P any, R any](ctx context.Context, h *Handler, request *jsonrpc.Request, response *jsonrpc.Response, call func(context.Context, *P) (*R, error)) {
	params := new(P)
	if err := decode(request.Params, params); err != nil {
		h.logger.Warn().Err(err).Str("op", request.Method).Msg("invalid params")
		response.Error = jsonrpc.NewInvalidParamsError(fmt.Sprintf("invalid %v params: %v", request.Method, err), request.Params)
		return
	}
	result, err := call(ctx, params)
	if err != nil {
		h.setResponse(request, response, nil, err)
		return
	}
	h.setResponse(request, response, result, nil)
}

func decode(data json.RawMessage, params interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, params); err != nil {
			return err
		}
	}
	if v, ok := params.(validator); ok {
		return v.Validate()
	}
	return nil
}

// asRPCError returns the upstream JSON-RPC error unchanged, or an internal error carrying err's message.
func asRPCError(err error) *jsonrpc.Error {
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return jsonrpc.NewInternalError(err.Error(), nil)
}

func requestKey(id interface{}) string {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Sprint(id)
	}
	return string(data)
}

func compact(raw json.RawMessage) string {
	buf := bytes.Buffer{}
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func validJSON(raw json.RawMessage) []byte {
	if json.Valid(raw) {
		return raw
	}
	data, _ := json.Marshal(string(raw))
	return data
}

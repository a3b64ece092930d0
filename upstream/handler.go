package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// callbackHandler serves requests initiated by the resource hub over the stream.
type callbackHandler struct {
	logger zerolog.Logger
}

func (h *callbackHandler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = jsonrpc.Version
	switch request.Method {
	case schema.MethodPing:
		response.Result = json.RawMessage(`{}`)
	default:
		h.logger.Debug().Str("method", request.Method).Msg("unsupported upstream request")
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not supported", request.Method), nil)
	}
}

func (h *callbackHandler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	h.logger.Debug().Str("method", notification.Method).Msg("upstream notification")
}

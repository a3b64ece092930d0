package endpoint

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hubbridge/proxy"
	"github.com/viant/hubbridge/upstream"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

type mockTransport struct {
	send  func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error)
	calls atomic.Int32
}

func (m *mockTransport) Notify(ctx context.Context, n *jsonrpc.Notification) error { return nil }
func (m *mockTransport) Send(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
	m.calls.Add(1)
	return m.send(ctx, r)
}

var _ transport.Transport = (*mockTransport)(nil)

func newHandler(mock *mockTransport) *Handler {
	var session *upstream.Session
	if mock != nil {
		session = upstream.NewSession("test", mock)
	}
	return New(proxy.New(session)).NewHandler(context.Background(), nil).(*Handler)
}

func request(id int, method string, params string) *jsonrpc.Request {
	ret := &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: id, Method: method}
	if params != "" {
		ret.Params = json.RawMessage(params)
	}
	return ret
}

func TestHandler_Initialize(t *testing.T) {
	handler := newHandler(nil)
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request(1, schema.MethodInitialize,
		`{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"host","version":"1.0"}}`), response)
	require.Nil(t, response.Error)

	var result struct {
		ProtocolVersion string                            `json:"protocolVersion"`
		ServerInfo      map[string]interface{}            `json:"serverInfo"`
		Capabilities    map[string]map[string]interface{} `json:"capabilities"`
	}
	require.NoError(t, json.Unmarshal(response.Result, &result))
	assert.Equal(t, schema.LatestProtocolVersion, result.ProtocolVersion)
	assert.Equal(t, ServerName, result.ServerInfo["name"])
	assert.Equal(t, ServerVersion, result.ServerInfo["version"])
	assert.Contains(t, result.Capabilities, "tools")
	assert.Contains(t, result.Capabilities, "prompts")
	require.Contains(t, result.Capabilities, "resources")
	assert.Equal(t, false, result.Capabilities["resources"]["subscribe"])
}

func TestHandler_Ping(t *testing.T) {
	handler := newHandler(nil)
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request(2, schema.MethodPing, ""), response)
	require.Nil(t, response.Error)
	assert.JSONEq(t, `{}`, string(response.Result))
}

func TestHandler_MethodNotFound(t *testing.T) {
	mock := &mockTransport{}
	handler := newHandler(mock)
	for _, method := range []string{"resources/subscribe", "completion/complete", "unknown"} {
		response := &jsonrpc.Response{}
		handler.Serve(context.Background(), request(3, method, `{}`), response)
		require.NotNil(t, response.Error, method)
		assert.EqualValues(t, -32601, response.Error.Code, method)
	}
	assert.EqualValues(t, 0, mock.calls.Load())
}

func TestHandler_NotConnected(t *testing.T) {
	handler := newHandler(nil)
	var testCases = []struct {
		method string
		params string
	}{
		{method: schema.MethodToolsList},
		{method: schema.MethodToolsCall, params: `{"name":"x"}`},
		{method: schema.MethodPromptsList, params: `{}`},
		{method: schema.MethodPromptsGet, params: `{"name":"p"}`},
		{method: schema.MethodResourcesList, params: `{"cursor":"abc"}`},
		{method: schema.MethodResourcesRead, params: `{"uri":"file:///a"}`},
	}
	for i, testCase := range testCases {
		response := &jsonrpc.Response{}
		handler.Serve(context.Background(), request(i+10, testCase.method, testCase.params), response)
		require.NotNil(t, response.Error, testCase.method)
		assert.Contains(t, response.Error.Message, "no upstream session connected", testCase.method)
	}
	assert.Equal(t, 0, handler.InFlight())
}

func TestHandler_InvalidParams(t *testing.T) {
	mock := &mockTransport{}
	handler := newHandler(mock)
	var testCases = []struct {
		description string
		method      string
		params      string
	}{
		{description: "missing tool name", method: schema.MethodToolsCall, params: `{"arguments":{}}`},
		{description: "arguments not an object", method: schema.MethodToolsCall, params: `{"name":"x","arguments":[1]}`},
		{description: "missing prompt name", method: schema.MethodPromptsGet, params: `{}`},
		{description: "missing uri", method: schema.MethodResourcesRead, params: `{"uri":""}`},
		{description: "malformed cursor", method: schema.MethodToolsList, params: `{"cursor":1}`},
		{description: "params not an object", method: schema.MethodResourcesRead, params: `"file:///a"`},
	}
	for i, testCase := range testCases {
		response := &jsonrpc.Response{}
		handler.Serve(context.Background(), request(i+20, testCase.method, testCase.params), response)
		require.NotNil(t, response.Error, testCase.description)
		assert.EqualValues(t, jsonrpc.InvalidParams, response.Error.Code, testCase.description)
	}
	assert.EqualValues(t, 0, mock.calls.Load())
}

func TestHandler_Forward(t *testing.T) {
	mock := &mockTransport{send: func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
		switch r.Method {
		case schema.MethodToolsCall:
			return &jsonrpc.Response{Id: r.Id, Jsonrpc: jsonrpc.Version, Result: json.RawMessage(`{"content":"ok"}`)}, nil
		case schema.MethodResourcesList:
			return &jsonrpc.Response{Id: r.Id, Jsonrpc: jsonrpc.Version, Result: json.RawMessage(`{"resources":[{"uri":"file:///a"}],"nextCursor":"def"}`)}, nil
		}
		return &jsonrpc.Response{Id: r.Id, Jsonrpc: jsonrpc.Version, Error: jsonrpc.NewError(-32002, "resource not found", map[string]string{"uri": "file:///x"})}, nil
	}}
	handler := newHandler(mock)

	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request(30, schema.MethodToolsCall, `{"name":"x","arguments":{"a":1}}`), response)
	require.Nil(t, response.Error)
	assert.JSONEq(t, `{"content":"ok"}`, string(response.Result))

	response = &jsonrpc.Response{}
	handler.Serve(context.Background(), request(31, schema.MethodResourcesList, `{"cursor":"abc"}`), response)
	require.Nil(t, response.Error)
	assert.JSONEq(t, `{"resources":[{"uri":"file:///a","name":""}]}`, string(response.Result))

	response = &jsonrpc.Response{}
	handler.Serve(context.Background(), request(32, schema.MethodResourcesRead, `{"uri":"file:///x"}`), response)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, -32002, response.Error.Code)
	assert.Equal(t, "resource not found", response.Error.Message)
	assert.Equal(t, 0, handler.InFlight())
}

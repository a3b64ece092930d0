// Package upstream owns the single streaming connection to the resource hub.
//
// Manager.Connect builds <baseURL>/sse?token=<session token>, dials it with the viant/jsonrpc
// SSE client, and performs the MCP initialize handshake before returning a Session. A Session
// is closed exactly once; further Close calls are no-ops.
//
// Request is the typed round trip used by the request forwarder:
//
//	result, err := upstream.Request[proxy.ListToolsResult](ctx, session, schema.MethodToolsList, params)
//
// The underlying channel correlates responses to requests, so concurrent Requests share one
// Session without additional locking.
package upstream

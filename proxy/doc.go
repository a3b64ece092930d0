// Package proxy forwards the six MCP request kinds over one upstream session.
//
// Each Forwarder method checks that the session is open, sends the request through
// upstream.Request with the caller's parameters and _meta untouched, and normalizes listing
// results so that optional text fields are always strings. tools/list and prompts/list return the
// upstream nextCursor; resources/list never does.
package proxy

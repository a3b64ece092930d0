// Package hubbridge exposes a remote resource hub to a local MCP host over stdio.
//
// The host talks to the bridge over stdin/stdout. The bridge exchanges a long-lived credential
// for a session credential (package auth), opens one SSE session to the hub (package upstream),
// and forwards tools, prompts and resources requests over it (packages proxy and endpoint).
// Package bridge wires the pieces together; bridge/hub-bridge is the binary.
//
//	RESOURCE_HUB_TOKEN=... RESOURCE_HUB_URL=http://localhost:3006 hub-bridge
package hubbridge

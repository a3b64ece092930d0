// Package bridge wires the resource hub bridge together.
//
// Startup is strictly ordered: the long-lived credential is exchanged for a session credential,
// the upstream session is connected, and only then does the stdio endpoint begin serving. The
// session is closed exactly once when serving ends.
//
// Options are read from flags or the RESOURCE_HUB_* environment:
//
//	RESOURCE_HUB_TOKEN=... hub-bridge --url http://localhost:3006
package bridge

// Package endpoint serves the bridge over the local stdio transport.
//
// The endpoint answers initialize with its own identity and a fixed capability set, whatever the
// resource hub supports, and dispatches the six request kinds to a proxy.Forwarder. Each request
// runs under its own context; notifications/cancelled aborts it.
package endpoint

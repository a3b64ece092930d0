// Package fault defines the failure kinds used across the bridge.
//
// Startup failures (configuration, authentication, connect) are fatal to the process.
// Request failures (not connected, upstream) are reported to the local caller and the
// bridge keeps serving.
package fault

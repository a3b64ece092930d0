// Package auth exchanges a long-lived resource hub token for a short-lived session token.
//
// The exchange is a single POST to <baseURL>/auth with body {"token": <long-lived>}; the
// response body must be JSON carrying the session token under "token". Tokens are never
// cached: every call to Authenticate performs exactly one request.
package auth

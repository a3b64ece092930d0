package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the expiration time of a JWT shaped session token. The signature is
// not verified; the token stays opaque to the bridge and is only inspected for logging.
func Expiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

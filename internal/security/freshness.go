package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultRefreshLead is how far before expiry a token counts as stale. It
// must stay well under the backend's token lifetime minus one round trip.
const DefaultRefreshLead = 5 * time.Minute

var errNoExpiry = errors.New("token carries no expiry claim")

// TokenExpiry decodes the expiry claim without verifying the signature.
// Verification is the backend's job; the client only needs the timestamp.
func TokenExpiry(raw string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// ShouldRefresh reports whether the token is stale at the given instant.
// An undecodable token counts as stale: the refresh attempt that follows
// fails safely if the token is truly invalid.
func ShouldRefresh(raw string, now time.Time, lead time.Duration) bool {
	if raw == "" {
		return true
	}
	if lead <= 0 {
		lead = DefaultRefreshLead
	}
	exp, err := TokenExpiry(raw)
	if err != nil {
		return true
	}
	return exp.Sub(now) <= lead
}

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what can be read from a JWT session token for display.
// The signature is not checked; the server remains the only judge of validity.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// DecodeClaims reads the registered claims of a JWT without verifying it.
// Opaque tokens report false.
func DecodeClaims(token string) (Claims, bool) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, false
	}
	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, true
}

// Claims decodes the current token, if any.
func (s *Session) Claims() (Claims, bool) {
	token, ok := s.Token()
	if !ok {
		return Claims{}, false
	}
	return DecodeClaims(token)
}

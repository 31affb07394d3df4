package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// SessionCodec mints and verifies the compact signed tokens that carry a
// logged-in user's identity. A token embeds {email, exp} and is signed with
// the server secret; expiry is the only invalidation mechanism, there is no
// revocation list. Rotating the secret invalidates every outstanding token
// at once.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCodec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the validity window applied to minted tokens.
func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

// Mint signs a fresh token for the given email, valid for the codec's TTL.
func (c *SessionCodec) Mint(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify reports the email embedded in the token. A missing, malformed,
// tampered or expired token yields ok=false; a corrupted payload is treated
// identically to a bad signature.
func (c *SessionCodec) Verify(token string) (email string, ok bool) {
	if token == "" {
		return "", false
	}
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	email, _ = claims["email"].(string)
	if email == "" {
		return "", false
	}
	return email, true
}

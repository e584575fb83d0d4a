package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AssertionClaims describes a JWT bearer assertion as a client would build it.
type AssertionClaims struct {
	Issuer   string
	Subject  string
	Audience string
	TTL      time.Duration // zero means no exp claim
	Extra    map[string]any
}

// Map renders the claims the way they go on the wire.
func (c AssertionClaims) Map(now time.Time) map[string]any {
	out := map[string]any{
		"iat": now.Unix(),
		"jti": NewJTI(),
	}
	if c.Issuer != "" {
		out["iss"] = c.Issuer
	}
	if c.Subject != "" {
		out["sub"] = c.Subject
	}
	if c.Audience != "" {
		out["aud"] = c.Audience
	}
	if c.TTL > 0 {
		out["exp"] = now.Add(c.TTL).Unix()
	}
	maps.Copy(out, c.Extra)
	return out
}

// SignAssertion signs claims with key. An empty alg picks the key's default.
func SignAssertion(key *Key, alg string, claims map[string]any) (string, error) {
	if alg == "" {
		alg = key.DefaultAlgorithm()
	}
	method := jwt.GetSigningMethod(alg)
	if method == nil {
		return "", fmt.Errorf("%w: %s", ErrAlgMismatch, alg)
	}

	sk, err := key.signingKey()
	if err != nil {
		return "", err
	}

	t := jwt.NewWithClaims(method, jwt.MapClaims(claims))
	if kid := key.KID(); kid != "" {
		t.Header["kid"] = kid
	}
	return t.SignedString(sk)
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

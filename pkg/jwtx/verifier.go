package jwtx

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Assertion is a decoded and verified JWT.
type Assertion struct {
	Header map[string]any
	Claims map[string]any
}

// AssertionVerifier checks the signature of an incoming JWT against a single
// configured Key and validates exp/nbf when those claims are present.
type AssertionVerifier struct {
	key    *Key
	leeway time.Duration
	now    func() time.Time
}

// VerifierOption tweaks an AssertionVerifier.
type VerifierOption func(*AssertionVerifier)

// WithLeeway allows small clock skew when validating exp/nbf.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *AssertionVerifier) { v.leeway = d }
}

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *AssertionVerifier) { v.now = now }
}

func NewAssertionVerifier(key *Key, opts ...VerifierOption) *AssertionVerifier {
	v := &AssertionVerifier{key: key, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Key returns the configured verification key.
func (v *AssertionVerifier) Key() *Key { return v.key }

// Verify parses tokenStr and returns its header and claims. Errors are
// *VerifyError values and match the package sentinels with errors.Is.
func (v *AssertionVerifier) Verify(tokenStr string) (Assertion, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return Assertion{}, &VerifyError{Kind: ErrMalformed}
	}
	if v.key == nil {
		return Assertion{}, &VerifyError{Kind: ErrNoKey}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods(v.key.Algorithms()),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return v.key.verificationKey(), nil
	})
	if err != nil {
		return Assertion{}, classify(err)
	}
	if !token.Valid {
		return Assertion{}, &VerifyError{Kind: ErrInvalidClaim}
	}

	return Assertion{
		Header: token.Header,
		Claims: map[string]any(claims),
	}, nil
}

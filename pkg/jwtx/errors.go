package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")

	ErrNoKey         = errors.New("jwtx: key not found")
	ErrUnsupported   = errors.New("jwtx: unsupported key type")
	ErrNoSigningKey  = errors.New("jwtx: key cannot sign")
	ErrNeedsPassword = errors.New("jwtx: private key is encrypted, passphrase required")
	ErrInvalidPoint  = errors.New("jwtx: EC point is not on the curve")
)

// classify maps a jwt library error onto one of our sentinels, keeping the
// original message around for diagnostics.
func classify(err error) error {
	var kind error
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		kind = ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenMalformed):
		kind = ErrMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		kind = ErrInvalidSig
	default:
		kind = ErrInvalidClaim
	}
	return &VerifyError{Kind: kind, Err: err}
}

// VerifyError is returned by AssertionVerifier.Verify. Kind is one of the
// package sentinels and Err is the underlying library error.
type VerifyError struct {
	Kind error
	Err  error
}

func (e *VerifyError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func (e *VerifyError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

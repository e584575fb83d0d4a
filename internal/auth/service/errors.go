package service

import (
	"errors"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrClientProtected = errors.New("client is protected and cannot be deleted")
	ErrOwnerNotFound   = errors.New("resource owner not found")
	ErrInvalidConfig   = errors.New("invalid grant configuration")
)

// Descriptions returned to the client. The texts for invalid_client and
// invalid_scope are the usual RFC 6749 wording.
const (
	descAssertionType  = "Assertion type not valid. Expected " + domain.AssertionTypeJWTBearer
	descAssertionEmpty = "assertion is required"
	descExpired        = "Signature has expired"
	descUnknownClient  = "Client authentication failed due to unknown client, no client authentication included, or unsupported authentication method."
	descInvalidScope   = "The requested scope is invalid, unknown, or malformed."
	descNoOwner        = "no authenticated resource owner"
	descServerError    = "the grant could not be processed"
)

func grantError(step, code, reason, desc string) *domain.GrantError {
	return &domain.GrantError{Code: code, Description: desc, Reason: reason, Step: step}
}

// internalFault is what any store or lock failure turns into. The cause is
// logged, never returned to the client.
func internalFault(step string) *domain.GrantError {
	return grantError(step, domain.CodeInvalidGrant, domain.ReasonServerError, descServerError)
}

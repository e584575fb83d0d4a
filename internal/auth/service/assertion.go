package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
)

type assertionKey struct{}

// WithAssertion stores a verified assertion on the request context so later
// steps read the claims without decoding the JWT again.
func WithAssertion(ctx context.Context, a domain.VerifiedAssertion) context.Context {
	return context.WithValue(ctx, assertionKey{}, a)
}

// AssertionFromContext returns the assertion verified earlier in this request.
func AssertionFromContext(ctx context.Context) (domain.VerifiedAssertion, bool) {
	a, ok := ctx.Value(assertionKey{}).(domain.VerifiedAssertion)
	return a, ok
}

// AssertionVerifier turns the assertion parameters of a grant request into a
// VerifiedAssertion or an invalid_grant error.
type AssertionVerifier struct {
	jwt *jwtx.AssertionVerifier
}

func NewAssertionVerifier(v *jwtx.AssertionVerifier) *AssertionVerifier {
	return &AssertionVerifier{jwt: v}
}

// Verify checks assertionType, then decodes and verifies the JWT with the
// configured key. If ctx already carries a verified assertion it is returned
// as is. Failures are *domain.GrantError values.
func (v *AssertionVerifier) Verify(ctx context.Context, assertion, assertionType string) (domain.VerifiedAssertion, error) {
	if a, ok := AssertionFromContext(ctx); ok {
		return a, nil
	}

	if assertionType != "" && assertionType != domain.AssertionTypeJWTBearer {
		return domain.VerifiedAssertion{}, grantError(domain.StepAssertion,
			domain.CodeInvalidGrant, domain.ReasonUnsupportedType, descAssertionType)
	}
	if strings.TrimSpace(assertion) == "" {
		return domain.VerifiedAssertion{}, grantError(domain.StepAssertion,
			domain.CodeInvalidGrant, domain.ReasonInvalid, descAssertionEmpty)
	}

	decoded, err := v.jwt.Verify(assertion)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.VerifiedAssertion{}, grantError(domain.StepAssertion,
				domain.CodeInvalidGrant, domain.ReasonExpired, descExpired)
		}
		return domain.VerifiedAssertion{}, grantError(domain.StepAssertion,
			domain.CodeInvalidGrant, domain.ReasonInvalid, err.Error())
	}

	return domain.VerifiedAssertion{Claims: decoded.Claims, Header: decoded.Header}, nil
}

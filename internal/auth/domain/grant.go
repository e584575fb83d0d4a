package domain

import (
	"net/url"
	"strings"
)

// AssertionTypeJWTBearer is both the grant_type and the only accepted
// assertion_type for the JWT bearer grant.
const AssertionTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// GrantRequest holds the parameters of one token request. It is built once
// from the form and not modified afterwards.
type GrantRequest struct {
	Assertion     string
	AssertionType string
	Scope         string
	ClientID      string
}

func NewGrantRequest(form url.Values) GrantRequest {
	return GrantRequest{
		Assertion:     strings.TrimSpace(form.Get("assertion")),
		AssertionType: strings.TrimSpace(form.Get("assertion_type")),
		Scope:         form.Get("scope"),
		ClientID:      strings.TrimSpace(form.Get("client_id")),
	}
}

// VerifiedAssertion is the decoded payload and header of an assertion whose
// signature checked out.
type VerifiedAssertion struct {
	Claims map[string]any
	Header map[string]any
}

func (a VerifiedAssertion) Issuer() string  { return a.stringClaim("iss") }
func (a VerifiedAssertion) Subject() string { return a.stringClaim("sub") }

func (a VerifiedAssertion) stringClaim(name string) string {
	s, _ := a.Claims[name].(string)
	return s
}

package domain

import "fmt"

// OAuth2 error codes a grant can fail with.
const (
	CodeInvalidGrant  = "invalid_grant"
	CodeInvalidClient = "invalid_client"
	CodeInvalidScope  = "invalid_scope"
)

// Diagnostic sub-reasons. They go to logs and metrics, never to the client.
const (
	ReasonExpired         = "expired"
	ReasonInvalid         = "invalid"
	ReasonUnsupportedType = "unsupported_assertion_type"
	ReasonUnknownClient   = "unknown_client"
	ReasonScopeNotAllowed = "scope_not_allowed"
	ReasonNoResourceOwner = "no_resource_owner"
	ReasonServerError     = "server_error"
)

// Validation steps, in the order they run.
const (
	StepAssertion     = "assertion"
	StepClient        = "client"
	StepScope         = "scope"
	StepResourceOwner = "resource_owner"
	StepAccessToken   = "access_token"
)

// GrantError is a rejected grant.
type GrantError struct {
	Code        string
	Description string
	Reason      string
	Step        string
}

func (e *GrantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// GrantOutcome carries either an issued token or the error that stopped the
// grant, never both.
type GrantOutcome struct {
	Token  *AccessToken
	Reused bool
	Err    *GrantError
}

func (o GrantOutcome) OK() bool { return o.Err == nil && o.Token != nil }

func Granted(tok AccessToken, reused bool) GrantOutcome {
	return GrantOutcome{Token: &tok, Reused: reused}
}

func Rejected(err *GrantError) GrantOutcome {
	return GrantOutcome{Err: err}
}

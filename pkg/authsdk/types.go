package authsdk

// GrantTypeJWTBearer is the grant_type value for the JWT bearer assertion
// grant (RFC 7523 section 2.1). It is also the only accepted assertion_type.
const GrantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// GrantTypeAssertion is the short grant_type name older clients send.
const GrantTypeAssertion = "assertion"

// ErrorResponse represents a standard OAuth2 error response per RFC 6749.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is returned from POST /v1/oauth2/token. The assertion grant
// never issues a refresh token, so there is no refresh_token member.
type TokenResponse struct {
	// AccessToken is the opaque bearer token
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the remaining lifetime in seconds
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this token.
	// It is always present, empty when no scope was granted
	Scope string `json:"scope"`

	// CreatedAt is the issue time as a unix timestamp
	CreatedAt int64 `json:"created_at,omitempty"`
}

// IntrospectionResponse represents the RFC 7662 token introspection response.
// When a token is inactive, only the Active field is set.
type IntrospectionResponse struct {
	Active bool `json:"active"`

	Scope     string `json:"scope,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
	Sub       string `json:"sub,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database     string `json:"database"`
	AssertionKey string `json:"assertion_key"`
}

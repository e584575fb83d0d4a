package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/pkg/authsdk"
	"github.com/aussiebroadwan/assertgrant/pkg/httpx"
)

// TokenHandler serves POST /v1/oauth2/token.
// Accepts application/x-www-form-urlencoded per the RFC 6749 framework. The
// only grant is the JWT bearer assertion grant (RFC 7523), also accepted
// under its short name "assertion".
type TokenHandler struct {
	GrantService *service.GrantService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Exchanges a signed JWT assertion for an opaque access token (RFC 7523). No refresh token is issued.
//	@Description	The legacy grant_type "assertion" is accepted together with assertion_type.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(urn:ietf:params:oauth:grant-type:jwt-bearer, assertion)
//	@Param			assertion		formData	string					true	"Signed JWT assertion"
//	@Param			assertion_type	formData	string					false	"Must be urn:ietf:params:oauth:grant-type:jwt-bearer when present"
//	@Param			scope			formData	string					false	"Space-delimited list of scopes"
//	@Param			client_id		formData	string					false	"Client identifier (when the issuer is not used as client id)"
//	@Success		200				{object}	authsdk.TokenResponse	"access_token, token_type, expires_in, scope"
//	@Failure		400				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		429				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Router			/v1/oauth2/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 1. Ensure the right content-type
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		authsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	// 2. Parse the form body
	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	// 3. Handle the grant type
	switch grantType := r.Form.Get("grant_type"); grantType {
	case authsdk.GrantTypeJWTBearer, authsdk.GrantTypeAssertion:
		h.handleAssertionGrant(w, r)
	case "":
		authsdk.ErrInvalidRequest.WithDescription("grant_type is required").WriteError(w)
	default:
		authsdk.ErrUnsupportedGrantType.WriteError(w)
	}
}

func (h *TokenHandler) handleAssertionGrant(w http.ResponseWriter, r *http.Request) {
	out := h.GrantService.Authorize(r.Context(), domain.NewGrantRequest(r.Form))
	if !out.OK() {
		authsdk.ForCode(out.Err.Code, out.Err.Description).WriteError(w)
		return
	}

	tok := out.Token

	// A fresh token reports its full lifetime; a reused one what is left.
	expiresIn := tok.ExpiresAt.Sub(tok.IssuedAt)
	if out.Reused {
		expiresIn = tok.ExpiresIn(time.Now())
	}

	response := authsdk.TokenResponse{
		AccessToken: tok.Token,
		TokenType:   "bearer",
		ExpiresIn:   int(expiresIn.Seconds()),
		Scope:       domain.JoinScopes(tok.Scopes),
		CreatedAt:   tok.IssuedAt.Unix(),
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}

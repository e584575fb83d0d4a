package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/pkg/authsdk"
	"github.com/aussiebroadwan/assertgrant/pkg/httpx"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

// RevokeHandler serves POST /v1/oauth2/revoke following RFC 7009. Unknown
// tokens also get 200 OK so the endpoint cannot be used to discover tokens.
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Revocation Endpoint
//	@Description	Revokes a previously issued access token (RFC 7009)
//	@Description	The endpoint is idempotent and returns 200 OK even for invalid/unknown tokens to prevent token scanning attacks.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			token			formData	string	true	"The token to revoke"
//	@Param			token_type_hint	formData	string	false	"Hint about token type"	Enums(access_token)
//	@Success		200				"Token revoked successfully (or was already invalid)"
//	@Failure		400				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Router			/v1/oauth2/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

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

	token := r.Form.Get("token")
	if token == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// 3. Refresh tokens are never issued, so any other hint has nothing to revoke
	if hint := r.Form.Get("token_type_hint"); hint == "" || hint == "access_token" {
		if err := h.TokenService.Revoke(ctx, token); err != nil {
			log.Warn("revoke access token failed", "err", err)
		}
	}

	// 4. Return 200 OK with empty body (RFC 7009 section 2.2)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}

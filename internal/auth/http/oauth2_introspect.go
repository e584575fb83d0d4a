package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/pkg/authsdk"
	"github.com/aussiebroadwan/assertgrant/pkg/httpx"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

// IntrospectHandler serves POST /v1/oauth2/introspect following RFC7662.
// It looks the opaque token up in the store and reports whether it is live.
type IntrospectHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Introspection Endpoint
//	@Description	Reports whether an access token is active and returns its metadata (RFC 7662)
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Security		BearerAuth
//	@Param			token			formData	string							true	"The token to introspect"
//	@Param			token_type_hint	formData	string							false	"Hint about token type"	Enums(access_token)
//	@Success		200				{object}	authsdk.IntrospectionResponse	"Token introspection result"
//	@Failure		400				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		401				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Header			200				{string}	Cache-Control					"no-store"
//	@Header			200				{string}	Pragma							"no-cache"
//	@Router			/v1/oauth2/introspect [post].
func (h *IntrospectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	tokenTypeHint := r.Form.Get("token_type_hint")

	if token == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// 3. Only access tokens exist here
	if tokenTypeHint != "" && tokenTypeHint != "access_token" {
		writeInactiveResponse(w)
		return
	}

	tok, active, err := h.TokenService.Introspect(ctx, token)
	if err != nil {
		log.Error("introspection lookup failed", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}
	if !active {
		// Per RFC7662, return active=false without revealing why
		writeInactiveResponse(w)
		return
	}

	response := authsdk.IntrospectionResponse{
		Active:    true,
		Scope:     domain.JoinScopes(tok.Scopes),
		ClientID:  tok.ClientID,
		TokenType: "bearer",
		Exp:       tok.ExpiresAt.Unix(),
		Iat:       tok.IssuedAt.Unix(),
		Sub:       tok.ResourceOwnerID,
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}

// writeInactiveResponse returns the minimal RFC7662 response for inactive tokens.
func writeInactiveResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)

	// Per RFC7662: "If the token is not active, does not exist on this server,
	// or the protected resource is not allowed to introspect this particular token,
	// then the authorization server MUST return an introspection response with
	// the 'active' field set to 'false'"
	_, _ = w.Write([]byte(`{"active":false}`))
}

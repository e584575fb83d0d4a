package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/assertgrant/pkg/cryptox"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

// BearerSecretMiddleware admits only requests presenting the shared secret as
// a bearer token. Used to protect the introspection endpoint, which resource
// servers call with a static credential.
func BearerSecretMiddleware(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			if !cryptox.SecureCompare(raw, secret) {
				slogx.FromContext(r.Context()).Warn("bearer secret mismatch")
				writeBearerError(w, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

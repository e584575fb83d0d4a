package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/assertgrant/pkg/cryptox"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

// ProxySecretHeader carries the secret shared with the authenticating proxy.
const ProxySecretHeader = "X-Proxy-Secret"

// SessionConfig describes how an upstream authentication proxy hands us the
// signed-in resource owner.
type SessionConfig struct {
	// OwnerHeader holds the resource owner id set by the proxy.
	OwnerHeader string
	// ProxySecret must match ProxySecretHeader for OwnerHeader to be trusted.
	ProxySecret string
}

// OwnerSessionMiddleware copies the authenticated owner id from the proxy
// header into the request context through attach. Requests without the proxy
// secret pass through untouched, so the owner header alone is never trusted.
func OwnerSessionMiddleware(cfg SessionConfig, attach func(ctx context.Context, ownerID string) context.Context) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := strings.TrimSpace(r.Header.Get(cfg.OwnerHeader))
			if ownerID == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !cryptox.SecureCompare(r.Header.Get(ProxySecretHeader), cfg.ProxySecret) {
				slogx.FromContext(r.Context()).Warn("ignoring owner header without proxy secret",
					"header", cfg.OwnerHeader,
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := slogx.With(r.Context(), "owner_id", ownerID)
			next.ServeHTTP(w, r.WithContext(attach(ctx, ownerID)))
		})
	}
}

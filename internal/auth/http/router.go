package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/pkg/httpx"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/assertgrant/api/assertgrant" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate swag init -g router.go -d . -o ../../../api/assertgrant --packageName assertgrant --parseDependency --outputTypes go

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	key          *jwtx.Key
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	GrantService *service.GrantService
	TokenService *service.TokenService

	// IntrospectionSecret protects /v1/oauth2/introspect. Empty disables the
	// endpoint.
	IntrospectionSecret string
	// Session, when set, takes the resource owner from a trusted proxy
	// header on the token endpoint.
	Session *httpx.SessionConfig
	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

func NewRouter(
	key *jwtx.Key,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		key:          key,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			assertgrant API
//	@version		0.1.0
//	@description	OAuth 2.0 JWT bearer assertion grant (RFC 7523). Clients exchange a signed JWT for an opaque, short-lived access token.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/assertgrant
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Introspection secret. Format: "Bearer {secret}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	// POST /token - rate limited by IP and client_id (when sent), verifies a
	// signature and may write a token
	tokenMiddlewares := []httpx.Middleware{httpx.RateLimitByIPAndFormField(httpx.TokenLimit, "client_id")}
	if r.Session != nil {
		tokenMiddlewares = append(tokenMiddlewares, httpx.OwnerSessionMiddleware(*r.Session, attachOwner))
	}
	tokenHandler := &TokenHandler{GrantService: r.GrantService}
	r.Mux.Handle("POST /v1/oauth2/token", httpx.Chain(tokenHandler, tokenMiddlewares...))

	// POST /revoke - RFC 7009, always 200
	revokeHandler := &RevokeHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/oauth2/revoke",
		httpx.Chain(revokeHandler,
			httpx.RateLimitByIP(httpx.IntrospectLimit),
		),
	)

	// Introspection endpoint (RFC 7662) - shared bearer secret
	if r.IntrospectionSecret == "" {
		r.logger.Info("introspection endpoint disabled, no secret configured")
		return
	}
	introspectHandler := &IntrospectHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/oauth2/introspect",
		httpx.Chain(introspectHandler,
			httpx.RateLimitByIP(httpx.IntrospectLimit),
			httpx.BearerSecretMiddleware(r.IntrospectionSecret),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.key))

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.Metrics, promhttp.HandlerOpts{}))
	}
}

func attachOwner(ctx context.Context, ownerID string) context.Context {
	return service.WithResourceOwner(ctx, domain.ResourceOwner{ID: ownerID})
}

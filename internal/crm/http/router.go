package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/metrics"
	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/pkg/httpx"
	"github.com/SGK112/CRM-sub005/pkg/jwtx"
	"github.com/SGK112/CRM-sub005/pkg/otelx"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/SGK112/CRM-sub005/api/crm" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store               store.Store
	InvitationService   *service.InvitationService
	AuthService         *service.AuthService
	ProvisioningService *service.ProvisioningService
	UsageService        *service.UsageService

	// Gatherer backs GET /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvitations()
	r.registerAuth()
	r.registerWorkspaces()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CRM Workspace Service API
//	@version		0.1.0
//	@description	Workspace provisioning, login and the invitation workflow that adds members under a seat limit.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs bound to one workspace and can be verified using the JWKS endpoint.
//
//	@contact.name				CRM Platform Team
//	@contact.url				https://github.com/SGK112/CRM-sub005
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with tracing and request metrics labelled
// by the route rather than the raw path.
func (r *Router) handle(pattern string, h http.Handler) {
	route := pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		route = path
	}
	r.Mux.Handle(pattern, httpx.Chain(r.metrics.InstrumentHandler(route, h),
		otelx.HTTPMiddleware(pattern),
	))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	// POST /invitations - moderate rate limit by user and by workspace
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/exp/workspace)
		httpx.RequireAnyScope(string(domain.PermInvitationsCreate)),
		httpx.RateLimitByUser(httpx.ModerateLimit),
		httpx.RateLimitByWorkspace(httpx.ModerateLimit),
	)

	// GET /invitations - lenient rate limit by user
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(string(domain.PermInvitationsRead)),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// DELETE /invitations/{id} - moderate rate limit by user
	securedRevoke := httpx.Chain(http.HandlerFunc(h.HandleRevoke),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(string(domain.PermInvitationsDelete)),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.handle("POST /invitations", securedCreate)
	r.handle("GET /invitations", securedList)
	r.handle("DELETE /invitations/{id}", securedRevoke)

	// POST /invitations/accept - strict rate limit by IP (public, token guessing)
	r.handle("POST /invitations/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit by IP + email to slow password guessing
	r.handle("POST /auth/login",
		httpx.Chain(h,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// GET /jwks.json - public endpoint with high limit
	r.handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerWorkspaces() {
	// POST /workspaces - very strict rate limit by IP (operator endpoint)
	provisionHandler := &ProvisionHandler{ProvisioningService: r.ProvisioningService}
	r.handle("POST /workspaces",
		httpx.Chain(provisionHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	usageHandler := &UsageHandler{UsageService: r.UsageService}
	r.handle("GET /workspace/usage",
		httpx.Chain(usageHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(string(domain.PermInvitationsRead)),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	var lockCheck pinger
	if r.InvitationService != nil {
		lockCheck, _ = r.InvitationService.Locker.(pinger)
	}
	r.handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, lockCheck),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	gatherer := r.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/service"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/httpx"
	"github.com/aussiebroadwan/notetab/pkg/jwtx"
	"github.com/aussiebroadwan/notetab/pkg/slogx"

	_ "github.com/aussiebroadwan/notetab/api/notes" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	TokenService  *service.TokenService
	NoteService   *service.NoteService
	UserService   *service.UserService
	TenantService *service.TenantService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.MetricsMiddleware("notes"),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerNotes()
	r.registerUsers()
	r.registerTenants()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			NoteTab Notes Service API
//	@version		0.1.0
//	@description	Multi-tenant notes service with JWT-based authentication.
//	@description
//	@description				Every token carries the user's tenant and role; all note operations
//	@description				are confined to the tenant the token was issued for.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/notetab
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

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	// All note endpoints require a valid token; tenancy comes from the claims.
	// Reads get a lenient per-user limit, mutations a moderate one.
	secured := func(next http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/exp)
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /v1/notes", secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/notes", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/notes/{id}", secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/notes/{id}", secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/notes/{id}", secured(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerUsers() {
	h := &InviteHandler{UserService: r.UserService}

	// POST /users/invite - admin only, moderate rate limit by user
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleAdmin.String()),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/users/invite", secured)
}

func (r *Router) registerTenants() {
	h := &UpgradeHandler{TenantService: r.TenantService}

	// POST /tenants/{slug}/upgrade - admin only, moderate rate limit by user
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleAdmin.String()),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/tenants/{slug}/upgrade", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics", httpx.MetricsHandler())
}

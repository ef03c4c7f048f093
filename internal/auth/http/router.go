package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/likestem/authd/internal/auth/service"
	"github.com/likestem/authd/internal/auth/store"
	"github.com/likestem/authd/pkg/httpx"
	"github.com/likestem/authd/pkg/jwtx"
	"github.com/likestem/authd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService  *service.AuthService
	ResetService *service.PasswordResetService
	MFAService   *service.MFAService
	UserService  *service.UserService
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
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPasswordReset()
	r.registerAccount()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	verifyHandler := &MFAVerifyHandler{AuthService: r.AuthService}

	// POST /register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /mfa/verify - strict rate limit by IP (code guessing)
	r.Mux.Handle("POST /v1/auth/mfa/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPasswordReset() {
	forgotHandler := &ForgotPasswordHandler{ResetService: r.ResetService}
	resetHandler := &ResetPasswordHandler{ResetService: r.ResetService}

	// POST /password/forgot - strict rate limit by IP (sends email)
	r.Mux.Handle("POST /v1/auth/password/forgot",
		httpx.Chain(forgotHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /password/reset - strict rate limit by IP (token guessing)
	r.Mux.Handle("POST /v1/auth/password/reset",
		httpx.Chain(resetHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAccount() {
	userInfoHandler := &UserInfoHandler{UserService: r.UserService}
	mfaHandler := &MFAManageHandler{MFAService: r.MFAService}

	// GET /userinfo - authenticated, lenient rate limit by user
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(userInfoHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /mfa/enable and DELETE /mfa - authenticated, moderate limit
	r.Mux.Handle("POST /v1/mfa/enable",
		httpx.Chain(http.HandlerFunc(mfaHandler.HandleEnable),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/mfa",
		httpx.Chain(http.HandlerFunc(mfaHandler.HandleDisable),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nabinkhair42/pocket-due/internal/auth"
	"github.com/nabinkhair42/pocket-due/internal/config"
	"github.com/nabinkhair42/pocket-due/internal/http/handlers"
	"github.com/nabinkhair42/pocket-due/internal/middleware"
	"github.com/nabinkhair42/pocket-due/internal/ratelimit"
	"github.com/nabinkhair42/pocket-due/internal/service"
	"github.com/nabinkhair42/pocket-due/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner       *http.Server
	authLimiter *ratelimit.Window
	apiLimiter  *ratelimit.Window
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authSvc := service.NewAuthService(store, tokens)
	paymentSvc := service.NewPaymentService(store)

	authLimiter := ratelimit.NewWindow(cfg.AuthRateLimit, cfg.RateLimitWindow)
	apiLimiter := ratelimit.NewWindow(cfg.APIRateLimit, cfg.RateLimitWindow)

	mux := Routes(tokens, authSvc, paymentSvc, authLimiter, apiLimiter)

	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.Logging(
			middleware.Metrics(
				middleware.Recover(cfg.Production(), mux))))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, authLimiter: authLimiter, apiLimiter: apiLimiter}
}

// Routes builds the route table. Split out of New so tests can mount the
// full API on an httptest server.
func Routes(tokens *auth.TokenManager,
	authSvc *service.AuthService, paymentSvc *service.PaymentService,
	authLimiter, apiLimiter ratelimit.Limiter) *http.ServeMux {

	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(tokens)
	authLimit := middleware.RateLimit(authLimiter, "Too many authentication attempts")
	apiLimit := middleware.RateLimit(apiLimiter, "Too many API requests")

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(authSvc).Register(mux, authLimit, requireAuth)
	handlers.NewPaymentHandler(paymentSvc).Register(mux, apiLimit, requireAuth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server and stops the limiter sweeps.
func (s *Server) Shutdown(ctx context.Context) error {
	s.authLimiter.Close()
	s.apiLimiter.Close()
	return s.inner.Shutdown(ctx)
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/vsbank-api/internal/config"
	"github.com/vsbank-api/internal/transport/http/handler"
	appmiddleware "github.com/vsbank-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds the application router. The returned stop function ends
// background work owned by the router's middleware.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, func()) {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.SecureHeaders(cfg.IsProduction()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(httprate.Limit(cfg.RateLimitPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))

	// Tighter token bucket for the credential endpoints.
	authRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.AuthRatePerSecond), cfg.AuthRateBurst)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(deps.Auth)
	accountH := handler.NewAccountHandler(deps.Account)
	creditH := handler.NewCreditHandler(deps.Credit)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes ────────────────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(authRL.Limit)
			r.Post("/auth/login", authH.Login)
			r.Post("/auth/2fa", authH.TwoFactor)
			r.Post("/auth/register", authH.Register)
		})

		// ── Bearer routes ────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Bearer)
			r.Get("/account/me", accountH.Me)
			r.Get("/account/summary", accountH.Summary)
			r.Get("/transactions", accountH.Transactions)
			r.Post("/credit/simulations", creditH.Simulate)
		})
	})

	return r, authRL.Stop
}

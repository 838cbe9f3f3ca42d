package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shop-access-core/internal/application/auth"
	"github.com/shop-access-core/internal/application/settings"
	"github.com/shop-access-core/internal/config"
	"github.com/shop-access-core/internal/transport/http/handler"
	appmiddleware "github.com/shop-access-core/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", appmiddleware.AdminSecretHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Every inbound request passes the fixed-window limiter before any
	// application logic.
	rl := appmiddleware.NewRateLimiter(cfg.RateLimitBudget, cfg.RateLimitWindow)
	r.Use(rl.Limit)

	adminMw := appmiddleware.Admin(deps.JWTProvider, cfg.AdminSecret)

	authSvc := auth.NewService(auth.ServiceDeps{
		Codes:          deps.Codes,
		Sender:         deps.Mailer,
		Tokens:         deps.JWTProvider,
		AdminEmails:    cfg.AdminEmails,
		CodeTTL:        cfg.CodeTTL,
		ResendCooldown: cfg.CodeResendCooldown,
	})
	settingsSvc := settings.NewService(deps.SettingsRepo, deps.Cache, deps.Invalidator, cfg.CacheTTL)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	cacheH := handler.NewCacheHandler(deps.Invalidator)

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Post("/auth/request-code", authH.RequestCode)
		r.Post("/auth/exchange-code", authH.ExchangeCode)
		r.Post("/auth/refresh", authH.Refresh)
		r.Get("/settings", settingsH.Get)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(adminMw)

			r.Get("/auth/session", authH.Session)
			r.Put("/settings", settingsH.Update)
			r.Post("/cache/invalidate", cacheH.Invalidate)
		})
	})

	return r
}

// Package api provides the HTTP API for WeatherDeck.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/weatherdeck/weatherdeck/internal/api/handler"
	"github.com/weatherdeck/weatherdeck/internal/api/middleware"
	"github.com/weatherdeck/weatherdeck/internal/credentials"
	"github.com/weatherdeck/weatherdeck/internal/favourites"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Pool        *pgxpool.Pool
	Credentials *credentials.Service
	Directory   *favourites.Directory
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "weatherdeck-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Pool)
	accountsHandler := handler.NewAccountsHandler(cfg.Credentials, cfg.Directory, cfg.Logger)
	favouritesHandler := handler.NewFavouritesHandler(cfg.Directory, cfg.Logger)

	accountRateLimit := middleware.RateLimitByIP(middleware.AccountRateLimit)   // 10 req/min
	weatherRateLimit := middleware.RateLimitByIP(middleware.WeatherRateLimit)   // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	r.Route("/api", func(r chi.Router) {
		// Ops endpoints (public)
		r.Get("/health", opsHandler.HealthCheck)
		r.Get("/db-check", opsHandler.DBCheck)

		// Account endpoints - strict rate limiting
		r.Group(func(r chi.Router) {
			r.Use(accountRateLimit)
			r.Post("/login", accountsHandler.Login)
			r.Post("/create-account", accountsHandler.CreateAccount)
			r.Post("/update-password", accountsHandler.UpdatePassword)
			r.Post("/init-db", accountsHandler.InitDB)
		})

		// Favourites endpoints
		r.Route("/users/{username}/favourites", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(standardRateLimit)
				r.Post("/", favouritesHandler.Add)
				r.Get("/", favouritesHandler.List)
				r.Delete("/", favouritesHandler.Clear)
				r.Get("/count", favouritesHandler.Count)
				r.Delete("/{location}", favouritesHandler.Remove)
			})

			// Weather lookups reach the provider - tighter rate limiting
			r.Group(func(r chi.Router) {
				r.Use(weatherRateLimit)
				r.Get("/weather/current", favouritesHandler.AllCurrentWeather)
				r.Get("/{location}/weather/current", favouritesHandler.CurrentWeather)
				r.Get("/{location}/weather/history", favouritesHandler.HistoricalWeather)
				r.Get("/{location}/weather/forecast", favouritesHandler.Forecast)
			})
		})
	})

	return r
}

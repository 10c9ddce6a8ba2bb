package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/identity-service/internal/auth"
	"github.com/frahmantamala/identity-service/internal/company"
	"github.com/frahmantamala/identity-service/internal/transport/middleware"
	"github.com/frahmantamala/identity-service/internal/transport/swagger"
	"github.com/frahmantamala/identity-service/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers are the domain handlers mounted under /api/v1. A nil handler leaves
// its routes out.
type Handlers struct {
	Health  *HealthHandler
	Auth    *auth.Handler
	User    *user.Handler
	Company *company.Handler
}

type Options struct {
	AllowedOrigins []string
	// RequireBasicAuth guards the user and company routes with admin Basic auth.
	RequireBasicAuth bool
	// MaxBodyBytes caps /api/v1 request bodies; zero means the middleware default.
	MaxBodyBytes int64
	// RequestValidator, when set, runs before every /api/v1 handler.
	RequestValidator func(http.Handler) http.Handler
	OpenAPISpec      []byte
	Logger           *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options) {
	// Apply global middleware
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(opts.Logger))
	router.Use(middleware.LoggingMiddleware())

	if len(opts.OpenAPISpec) > 0 {
		router.Get(swagger.SpecPath, swagger.SpecHandler(opts.OpenAPISpec))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(opts.MaxBodyBytes))
		if opts.RequestValidator != nil {
			r.Use(opts.RequestValidator)
		}

		if h.Health != nil {
			r.Get("/health", h.Health.Health)
			r.Get("/ping", h.Health.Ping)
		}

		if h.Auth != nil {
			r.Post("/login", h.Auth.Login)
		}

		r.Group(func(pr chi.Router) {
			if opts.RequireBasicAuth && h.Auth != nil {
				pr.Use(h.Auth.BasicAuthMiddleware)
			}

			if h.User != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.ListUsers)
					ur.Post("/", h.User.CreateUser)
					ur.Get("/{uid}", h.User.GetUser)
					ur.Put("/{uid}", h.User.UpdateUser)
					ur.Patch("/{uid}", h.User.UpdateUser)
				})
			}

			if h.Company != nil {
				pr.Get("/companies", h.Company.GetCompanies)
				pr.Get("/companies/{name}/users", h.Company.GetCompanyUsers)
			}
		})
	})
}

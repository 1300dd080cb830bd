package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/landing/contacto-api/internal/auth"
	"github.com/landing/contacto-api/internal/infra/http/handlers"
	"github.com/landing/contacto-api/internal/infra/http/middleware"
)

type Dependencies struct {
	Contact        *handlers.ContactHandler
	Auth           *handlers.AuthHandler
	Leads          *handlers.LeadHandler
	Health         *handlers.HealthHandler
	Tokens         auth.TokenVerifier
	AllowedOrigins []string
}

func New(d Dependencies) http.Handler {
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if d.Health != nil {
		r.Get("/health", d.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/contacto", d.Contact.Handle)
		r.Post("/login", d.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(d.Tokens))
			r.Get("/leads", d.Leads.List)
			r.Put("/leads/{id}", d.Leads.UpdateStatus)
		})
	})

	return r
}

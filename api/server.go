/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the admin frontend

ROUTE GROUPS:
  /api/schedule        Schedule documents (editing model, V2, V1)
  /api/outcomes        Outcome registry
  /api/resolve         Single-date resolution
  /api/week, /month    Calendar views
  /api/summary         Open-time aggregation
  /api/templates       Holiday template catalog

SECURITY NOTE:
  No authentication middleware. All endpoints are public; the server is
  meant to sit behind the embedding application's own access control.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Schedule documents
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", h.GetSchedule)
			r.Put("/", h.PutSchedule)
			r.Get("/v2", h.GetScheduleV2)
			r.Put("/v2", h.PutScheduleV2)
			r.Get("/v1", h.GetScheduleV1)
		})

		// Outcome registry
		r.Route("/outcomes", func(r chi.Router) {
			r.Get("/", h.GetOutcomes)
			r.Put("/", h.PutOutcomes)
		})

		// Resolution and calendar views
		r.Get("/resolve", h.GetResolve)
		r.Get("/week", h.GetWeek)
		r.Get("/month", h.GetMonth)
		r.Get("/summary", h.GetSummary)

		// Holiday templates
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.GetTemplates)
			r.Get("/{id}", h.GetTemplate)
		})
	})

	return r
}

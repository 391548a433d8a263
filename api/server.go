/*
server.go - HTTP router, middleware, and tenant resolution

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend
  5. Tenant:     Resolves X-Tenant-ID and stores it on the context

TENANT RESOLUTION:
  Real deployments resolve the tenant from authentication; this service
  treats auth as an external collaborator and takes the already-resolved
  tenant from the X-Tenant-ID header. A request without one is rejected
  with 400 before any handler runs.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/warp/roster-engine/roster"
)

type contextKey string

const tenantKey contextKey = "tenant"

// tenantFrom returns the tenant the middleware resolved for this request.
func tenantFrom(r *http.Request) roster.TenantID {
	tenant, _ := r.Context().Value(tenantKey).(roster.TenantID)
	return tenant
}

// requireTenant rejects requests without an X-Tenant-ID header and stores
// the tenant on the context for handlers.
func requireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant := r.Header.Get("X-Tenant-ID")
		if tenant == "" {
			writeJSON(w, http.StatusBadRequest, Envelope{
				Success: false,
				Message: "X-Tenant-ID header is required",
			})
			return
		}
		ctx := context.WithValue(r.Context(), tenantKey, roster.TenantID(tenant))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Tenant-ID"},
		AllowCredentials: true,
	}))

	// API routes (all tenant-scoped)
	r.Route("/api", func(r chi.Router) {
		r.Use(requireTenant)

		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.CreateLeave)
			r.Get("/{id}", h.GetLeave)
			r.Delete("/{id}", h.DeleteLeave)
			r.Post("/{id}/sync", h.SyncLeave)
		})

		r.Route("/replacements", func(r chi.Router) {
			r.Post("/", h.AssignReplacement)
			r.Post("/validate", h.ValidatePeriod)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/{id}/assignments", h.ListAssignments)
		})

		r.Get("/personnel", h.ListPersonnel)

		r.Route("/jokers", func(r chi.Router) {
			r.Get("/", h.ListJokers)
			r.Post("/", h.CreateJoker)
		})
	})

	return r
}

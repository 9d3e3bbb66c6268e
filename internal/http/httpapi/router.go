// Package httpapi assembles the chi router for the public API surface.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires the middleware chain and the versioned routes. Everything
// under /v1 except health and the Google exchange requires a session token.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N("en", lookup),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/auth/google", app.AuthGoogleVerify)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))

		r.Get("/v1/auth/user", app.Me)

		r.Route("/v1/doubts", func(r chi.Router) {
			r.Post("/", app.CreateDoubt)
			r.Get("/", app.ListDoubts)
			r.Get("/bookmarked", app.ListBookmarkedDoubts)
			r.Patch("/{id}", app.UpdateDoubt)
			r.Post("/{id}/simplify", app.SimplifyDoubt)
		})

		r.Route("/v1/user", func(r chi.Router) {
			r.Get("/stats", app.UserStats)
			r.Patch("/subscription", app.UpdateSubscription)
		})
	})

	return r
}

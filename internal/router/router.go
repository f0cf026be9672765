// Package router wires every endpoint to its handler and middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safespace-dev/safespace/internal/middleware"
	"github.com/safespace-dev/safespace/internal/middleware/metrics"
	"github.com/safespace-dev/safespace/internal/setup"
)

func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chi_middleware.RealIP)
	r.Use(chi_middleware.Recoverer)
	r.Use(chi_middleware.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders(deps.Config.Public.SecureCookies))

	allowedOrigin := deps.Config.Public.AllowedOrigin
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	needAuth := middleware.NeedAuth(deps.Jwt)
	optionalAuth := middleware.OptionalAuth(deps.Jwt)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready(deps.Storage))
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", optionalAuth(h.Logout))
			r.Get("/me", needAuth(h.Me))
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", optionalAuth(h.Feed))
			r.Post("/", needAuth(h.CreatePost))
			r.Post("/{postId}/replies", needAuth(h.CreateReply))
			r.Post("/{postId}/reactions/{kind}", needAuth(h.ToggleReaction))
		})
		r.Get("/topics", h.Topics)

		r.Route("/chat", func(r chi.Router) {
			r.Get("/", needAuth(h.GetChat))
			r.Post("/messages", needAuth(h.SendChat))
			r.Delete("/", needAuth(h.ResetChat))
		})

		r.Route("/breathing", func(r chi.Router) {
			r.Get("/", needAuth(h.GetBreathing))
			r.Get("/exercises", h.ListExercises)
			r.Post("/start", needAuth(h.StartBreathing))
			r.Post("/stop", needAuth(h.StopBreathing))
			r.Post("/restart", needAuth(h.RestartBreathing))
		})

		r.Get("/affirmations", h.Affirmations)
		r.Get("/affirmation", h.Affirmation)
	})

	// preflight requests for any unmatched route
	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

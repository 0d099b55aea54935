package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/darnellt0/7-days-to-calm/internal/api/handlers"
	"github.com/darnellt0/7-days-to-calm/internal/api/middleware"
	"github.com/darnellt0/7-days-to-calm/internal/config"
)

// NewRouter creates the HTTP router with all broker routes.
func NewRouter(cfg *config.Config, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.UserExtractor)
	r.Use(middleware.Telemetry)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	// Conversation credentials for the web widget
	r.Get("/convai/signed-url", h.GetSignedURL)

	// Agent tool callback
	r.Post("/tool/log-goal", h.LogGoal)

	// Closing message (audio synthesis reserved)
	r.Post("/tts/closing", h.ClosingMessage)

	// Session routing and user tools
	r.Route("/api", func(r chi.Router) {
		r.Get("/route", h.GetRoute)
		r.Get("/user", h.GetUser)
		r.Route("/tools", func(r chi.Router) {
			r.Post("/setChallengeDay", h.SetChallengeDay)
			r.Post("/trackEvent", h.TrackEvent)
			r.Post("/setReminder", h.SetReminder)
		})
	})

	return r
}

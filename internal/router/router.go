// Package router sets up all HTTP routes and middleware chains for the
// AIPrintly API. CPU-heavy watermark routes sit behind a rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"aiprintly/internal/handlers"
	"aiprintly/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil to disable rate limiting.
// With trustProxy set, the client address is taken from X-Forwarded-For or
// X-Real-IP before logging and rate limiting see the request.
func New(api *handlers.API, limiter *middleware.RateLimiter, trustProxy bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(chimw.RequestID)
	if trustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(jsonError(http.StatusNotFound, "not found"))
	r.MethodNotAllowed(jsonError(http.StatusMethodNotAllowed, "method not allowed"))

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/print-areas", api.PrintAreas)

		r.Route("/mockups", func(r chi.Router) {
			r.Post("/", api.ComposeMockup)
			r.Post("/validate", api.ValidateQuality)
		})

		// Watermarking decodes and re-encodes full images.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/watermark", api.Watermark)
			r.Get("/assets/{id}/preview", api.AssetPreview)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// jsonError answers every request with the given status and message.
func jsonError(status int, msg string) http.HandlerFunc {
	body := []byte(`{"error":"` + msg + `"}` + "\n")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	}
}

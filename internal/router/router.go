package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/avinoddev/chatbot-memory/internal/handlers"
	"github.com/avinoddev/chatbot-memory/internal/middleware"
)

func New(
	userHandler *handlers.UserHandler,
	threadHandler *handlers.ThreadHandler,
	messageHandler *handlers.MessageHandler,
	signupLimiter *middleware.RateLimiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Liveness probe
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"Chatbot memory service running"}`))
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(signupLimiter.Middleware)
		r.Post("/", userHandler.Create)
	})

	r.Route("/threads", func(r chi.Router) {
		r.Post("/", threadHandler.Create)
		r.Get("/", threadHandler.List)
		r.Get("/{thread_id}", threadHandler.History)
	})

	r.Post("/messages", messageHandler.Create)

	return r
}

package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "triage-chat/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"triage-chat/internal/auth"
	"triage-chat/web"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler, emailHandler *EmailHandler, session *auth.Session, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(auth.Middleware(session))

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", web.StaticHandler()))

	// --- Pages ---
	// Analysis requests are not bounded by a timeout; they take as long as
	// the triage API does.
	r.Get("/", chatHandler.ShowChat)
	r.Post("/chat/messages", chatHandler.SubmitMessage)
	r.Post("/chat/files", chatHandler.SubmitFile)
	r.Post("/logout", chatHandler.Logout)
	r.Get("/login", chatHandler.SignedOut)
	r.Get("/email", emailHandler.ShowEmail)
	r.Post("/email", emailHandler.SubmitEmail)

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler)

		// Reads of the page state answer immediately.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/me", chatHandler.GetMe)
			r.Get("/chat", chatHandler.GetChat)
			r.Get("/chat/days", chatHandler.GetDays)
		})

		// Long-running and streaming endpoints. These routes must NOT have a timeout.
		r.Group(func(r chi.Router) {
			r.Post("/chat/history", chatHandler.LoadHistory)
			r.Post("/chat/messages", chatHandler.PostMessage)
			r.Post("/chat/files", chatHandler.PostFile)
			r.Get("/chat/events", chatHandler.StreamEvents)
			r.Post("/email", emailHandler.AnalyzeEmail)
		})
	})

	return r
}

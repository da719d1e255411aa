package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naufaladrian/be-report-app/internal/handlers"
	"github.com/naufaladrian/be-report-app/internal/middleware"
)

// SetupRoutes registers every endpoint. Report creation is the only gated
// route; the token check sits in front of the handler so the multipart body
// of an unauthenticated request is never parsed.
func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, reports *handlers.ReportHandler, verifier middleware.TokenVerifier) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello World"))
	})

	// Auth routes
	r.Post("/auth/register", auth.Register)
	r.Post("/auth/login", auth.Login)

	// Report routes
	r.Get("/reports", reports.List)
	r.With(middleware.RequireAuth(verifier)).Post("/reports", reports.Create)
	r.Get("/reports/{id}", reports.GetByID)
	r.Put("/reports/{id}/status", reports.UpdateStatus)
	r.Delete("/reports/{id}", reports.Delete)

	// Greeting echo routes
	r.Get("/message", handlers.GetMessage)
	r.Post("/message", handlers.PostMessage)
}

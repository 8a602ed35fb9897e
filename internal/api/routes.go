package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
//	GET /health
//	GET /api/v1/calendar/today?time=&reference=
//	GET /api/v1/calendar/{date}?time=&reference=
//	GET /api/v1/lunar/{year}/{month}/{day}?leap=&time=&reference=
//	GET /api/v1/solar-terms/{date}
//	GET /api/v1/ten-god?reference=&target=
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, ErrorInfo{Message: "Method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/calendar/today", handlers.GetToday)
		r.Get("/calendar/{date}", handlers.GetCalendar)
		r.Get("/lunar/{year}/{month}/{day}", handlers.GetLunar)
		r.Get("/solar-terms/{date}", handlers.GetSolarTerms)
		r.Get("/ten-god", handlers.GetTenGod)
	})

	return r
}

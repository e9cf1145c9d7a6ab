package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/sports-management/docs"
	"github.com/Dosada05/sports-management/handlers"
	"github.com/Dosada05/sports-management/middleware"
)

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

// newRouter builds a router with the middleware, health probe and API docs
// shared by both services.
func newRouter(opts Options, docInstance string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", handlers.Health)
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docInstance),
	))

	return router
}

// CoachRoutes mounts the coach service.
func CoachRoutes(h *handlers.CoachHandler, opts Options) http.Handler {
	router := newRouter(opts, docs.CoachInstance)

	router.Route("/schedule", func(r chi.Router) {
		r.Post("/", h.CreateMatch)
		r.Get("/", h.ListSchedule)
		r.Get("/{matchId}", h.GetMatch)
		r.Put("/{matchId}", h.UpdateMatch)
		r.Delete("/{matchId}", h.DeleteMatch)
	})
	router.Get("/schedules", h.ListSchedule)
	router.Get("/admin/schedule", h.ListAdminSchedule)
	router.Post("/assignvod", h.AssignVOD)

	router.Get("/roster", h.Roster)
	router.Get("/players", h.ListPlayers)
	router.Get("/coaches", h.ListCoaches)
	router.Get("/player-search", h.SearchPlayer)
	router.Get("/coach-search", h.SearchCoach)

	router.Delete("/user", h.DeleteUserByEmail)
	router.Put("/user/{id}", h.UpdateUser)
	router.Delete("/user/{id}", h.DeleteUserByID)
	router.Put("/update-password", h.UpdatePassword)
	router.Put("/reset-password", h.ResetPassword)

	return router
}

// PlayerRoutes mounts the player service. The match search catch-all only
// sees paths no other route claims.
func PlayerRoutes(h *handlers.PlayerHandler, opts Options) http.Handler {
	router := newRouter(opts, docs.PlayerInstance)

	router.Get("/schedules", h.Schedules)
	router.Get("/myvods", h.MyVODs)
	router.Put("/reviewvod/{vodId}", h.ReviewVOD)
	router.Put("/reset-password", h.ResetPassword)
	router.Put("/update-password", h.UpdatePassword)
	router.Get("/{matchId}", h.MatchSearch)

	return router
}

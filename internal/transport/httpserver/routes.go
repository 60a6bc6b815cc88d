package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"invite-app-go/internal/config"
	"invite-app-go/internal/metrics"
	"invite-app-go/internal/transport/httpserver/handler"
	"invite-app-go/internal/transport/httpserver/middleware"
	"invite-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, recorder *metrics.Recorder, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))
	r.Use(recorder.Middleware)

	if cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", recorder.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Get("/event", handlers.GetEvent)

		r.Post("/access/guest", handlers.CheckGuestCode)
		r.Post("/access/admin", handlers.CheckAdminCode)

		r.Get("/songs", handlers.ListSongs)
		r.Post("/songs", handlers.CreateSong)

		admin := middleware.NewAdminGate(handlers.Directory, log)
		r.Group(func(r chi.Router) {
			r.Use(admin.Middleware)

			r.Get("/admin/songs", handlers.ListSongs)
			r.Get("/admin/songs/export.csv", handlers.ExportSongs)
		})
	})

	return r
}

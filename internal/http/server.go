package http

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/mauv0809/dna-dashboard/internal/config"
	"github.com/mauv0809/dna-dashboard/internal/http/handlers"
	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/players"
	"github.com/mauv0809/dna-dashboard/internal/settings"
)

func NewServer(playerStore players.Store, settingsStore settings.Store, mediaStore media.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Players:        playerStore,
		Settings:       settingsStore,
		Media:          mediaStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/players", Chain(handlers.ListPlayersHandler(s.Players), paramsMiddleware))
	s.Router.Handle("GET /api/stats", Chain(handlers.StatsHandler(s.Players), paramsMiddleware))
	s.Router.Handle("GET /api/stats/hourly", Chain(handlers.HourlyStatsHandler(s.Players), paramsMiddleware))

	s.Router.Handle("GET /api/settings", Chain(handlers.GetSettingsHandler(s.Settings), paramsMiddleware))
	s.Router.Handle("POST /api/settings", Chain(handlers.UpdateSettingsHandler(s.Settings), paramsMiddleware))
	export := Chain(handlers.ExportSettingsHandler(s.Settings), paramsMiddleware, exportCORS)
	s.Router.Handle("GET /api/settings/export", export)
	s.Router.Handle("OPTIONS /api/settings/export", export)

	maxBytes := s.Cfg.MaxUploadBytes
	s.Router.Handle("POST /api/upload", Chain(handlers.UploadMediaHandler(s.Media, maxBytes), paramsMiddleware))
	s.Router.Handle("GET /api/upload", Chain(handlers.ListMediaHandler(s.Media), paramsMiddleware))
	s.Router.Handle("DELETE /api/upload", Chain(handlers.DeleteMediaHandler(s.Media), paramsMiddleware))
	s.Router.Handle("POST /api/upload/presign", Chain(handlers.PresignUploadHandler(s.Media), paramsMiddleware))
}

// exportCORS lets game clients on any origin fetch the exported settings.
var exportCORS = cors.Handler(cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	AllowedHeaders: []string{"Accept", "Content-Type"},
	MaxAge:         300,
})

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

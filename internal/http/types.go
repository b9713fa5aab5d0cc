package http

import (
	"net/http"

	"github.com/mauv0809/dna-dashboard/internal/config"
	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/players"
	"github.com/mauv0809/dna-dashboard/internal/settings"
)

type Server struct {
	Players        players.Store
	Settings       settings.Store
	Media          media.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

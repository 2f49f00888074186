package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmacia-cloud/compras-backend/api/controllers"
	comprascontrollers "github.com/farmacia-cloud/compras-backend/api/controllers/compras"
	"github.com/farmacia-cloud/compras-backend/api/controllers/docs"
	"github.com/farmacia-cloud/compras-backend/api/middleware"
	internalcompras "github.com/farmacia-cloud/compras-backend/internal/compras"
	"github.com/farmacia-cloud/compras-backend/pkg/config"
	"github.com/farmacia-cloud/compras-backend/pkg/db"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
	"github.com/farmacia-cloud/compras-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	comprasService internalcompras.Service,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/docs", func(r chi.Router) {
		r.Get("/", docs.SwaggerUI())
		r.Get("/openapi.json", docs.OpenAPI())
	})

	r.Route("/api/v1/compras", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/", comprascontrollers.Registrar(comprasService, logg))
		r.Get("/", comprascontrollers.Listar(comprasService, logg))
		r.Get("/estadisticas", comprascontrollers.Estadisticas(comprasService, logg))
		r.Get("/{codigo}", comprascontrollers.Buscar(comprasService, logg))
	})

	return r
}

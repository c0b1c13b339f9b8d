package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmsuarez/usermap/api/controllers"
	"github.com/vmsuarez/usermap/api/middleware"
	"github.com/vmsuarez/usermap/internal/records"
	"github.com/vmsuarez/usermap/internal/selection"
	"github.com/vmsuarez/usermap/internal/stream"
	"github.com/vmsuarez/usermap/pkg/config"
	"github.com/vmsuarez/usermap/pkg/logger"
	"github.com/vmsuarez/usermap/pkg/metrics"
	"github.com/vmsuarez/usermap/web"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store controllers.Pinger,
	set *records.Set,
	coord *selection.Coordinator,
	broker *stream.Broker,
	gw controllers.Gateway,
	mtr *metrics.ServiceMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, store, logg))
	})

	if registry != nil {
		r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/view", controllers.TableView(set, logg))
		r.Get("/map", controllers.MapView(set, coord, logg))
		r.Get("/events", controllers.Events(broker, mtr, logg))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.UserCreate(gw, mtr, logg))
			r.Patch("/{id}", controllers.UserUpdate(gw, mtr, logg))
			r.Delete("/{id}", controllers.UserDelete(gw, mtr, logg))
		})

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", controllers.SelectionGet(coord))
			r.Put("/", controllers.SelectionSet(coord, logg))
			r.Delete("/", controllers.SelectionClear(coord))
		})
	})

	r.Mount("/", web.Handler(cfg, logg))

	return r
}

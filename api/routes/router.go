package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/catalog-pricing/api/controllers"
	"github.com/angelmondragon/catalog-pricing/api/middleware"
	"github.com/angelmondragon/catalog-pricing/internal/quotes"
	"github.com/angelmondragon/catalog-pricing/pkg/config"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
)

// Dependencies groups what the router needs. Redis may be nil when the
// snapshot cache is disabled.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Quotes   quotes.Service
	Gatherer prometheus.Gatherer
}

func NewRouter(deps Dependencies) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	checks := []controllers.ReadinessCheck{{Name: "database", Pinger: deps.DB}}
	if deps.Redis != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Pinger: deps.Redis})
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks...))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/regions", controllers.RegionList(deps.Quotes, logg))
		r.Get("/items/{itemId}/price", controllers.ItemPrice(deps.Quotes, logg))
		r.Post("/cart/quote", controllers.CartQuote(deps.Quotes, logg))
		r.Post("/shipping/quote", controllers.ShippingQuote(deps.Quotes, logg))
	})

	return r
}

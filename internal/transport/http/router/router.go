package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/handlers"
	appmw "github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/middleware"
)

func New(
	h *handlers.EventsHandler,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(appmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appmw.AccessLog)

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if cfg.RLEnabled {
			r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
		}

		r.Get("/events", h.List)
		r.Get("/events/search", h.Search)
		r.Get("/events/type/{type}", h.ByType)
		r.Get("/events/pricing/{pricing}", h.ByPricing)
	})

	return r
}

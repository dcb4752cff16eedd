package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slabtrack/slabtrack-backend/api/controllers"
	"github.com/slabtrack/slabtrack-backend/api/middleware"
	"github.com/slabtrack/slabtrack-backend/internal/consigners"
	"github.com/slabtrack/slabtrack-backend/internal/players"
	"github.com/slabtrack/slabtrack-backend/internal/prices"
	"github.com/slabtrack/slabtrack-backend/internal/submissions"
	"github.com/slabtrack/slabtrack-backend/pkg/config"
	"github.com/slabtrack/slabtrack-backend/pkg/db"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
	"github.com/slabtrack/slabtrack-backend/pkg/metrics"
	"github.com/slabtrack/slabtrack-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry

	Prices      prices.Service
	Submissions submissions.Service
	Consigners  consigners.Service
	Players     players.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var httpMetrics *metrics.HTTPMetrics
	if deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	writePolicy := middleware.NewWriteRateLimitPolicy(
		"write",
		cfg.WriteRateLimit.Window,
		cfg.WriteRateLimit.IPLimit,
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1", func(r chi.Router) {
			write := func(r chi.Router) chi.Router {
				return r.With(
					middleware.RequireWriteRole(logg),
					middleware.WriteRateLimit(writePolicy, deps.Redis, logg),
				)
			}

			write(r).Post("/prices", controllers.UpsertPrice(deps.Prices, logg))
			write(r).Post("/prices/bulk", controllers.BulkUpsertPrices(deps.Prices, logg))
			write(r).Delete("/prices/{priceID}", controllers.DeactivatePrice(deps.Prices, logg))

			r.Get("/players", controllers.ListPlayers(deps.Players, logg))
			write(r).Post("/players", controllers.CreatePlayer(deps.Players, logg))
			r.Get("/players/{playerID}", controllers.GetPlayer(deps.Players, logg))
			r.Get("/players/{playerID}/prices", controllers.LookupPlayerPrice(deps.Prices, logg))

			r.Get("/consigners", controllers.ListConsigners(deps.Consigners, logg))
			write(r).Post("/consigners", controllers.CreateConsigner(deps.Consigners, logg))
			r.Get("/consigners/{consignerID}", controllers.GetConsigner(deps.Consigners, logg))
			write(r).Put("/consigners/{consignerID}", controllers.UpdateConsigner(deps.Consigners, logg))
			write(r).Put("/consigners/{consignerID}/default", controllers.SetDefaultConsigner(deps.Consigners, logg))
			r.Get("/consigners/{consignerID}/prices/summary", controllers.ConsignerPriceSummary(deps.Prices, logg))

			r.Get("/submissions", controllers.ListSubmissions(deps.Submissions, logg))
			write(r).Post("/submissions", controllers.CreateSubmission(deps.Submissions, logg))
			r.Get("/submissions/{submissionID}", controllers.GetSubmission(deps.Submissions, logg))
			write(r).Post("/submissions/{submissionID}/status", controllers.AdvanceSubmissionStatus(deps.Submissions, logg))
			write(r).Post("/submissions/{submissionID}/results", controllers.SubmitSubmissionResults(deps.Submissions, logg))
			write(r).Post("/submissions/{submissionID}/cancel", controllers.CancelSubmission(deps.Submissions, logg))
		})
	})

	return r
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quoteline/rfqtracker-backend/api/controllers"
	"github.com/quoteline/rfqtracker-backend/api/middleware"
	"github.com/quoteline/rfqtracker-backend/internal/auth"
	"github.com/quoteline/rfqtracker-backend/internal/rfqs"
	"github.com/quoteline/rfqtracker-backend/pkg/auth/session"
	"github.com/quoteline/rfqtracker-backend/pkg/config"
	"github.com/quoteline/rfqtracker-backend/pkg/logger"
	"github.com/quoteline/rfqtracker-backend/pkg/metrics"
	"github.com/quoteline/rfqtracker-backend/pkg/redis"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Database       controllers.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	RFQService     rfqs.Service
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Database, deps.Redis, logg))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/rfqs", func(r chi.Router) {
			r.Get("/", controllers.ListRFQs(deps.RFQService, logg))
			r.Post("/", controllers.CreateRFQ(deps.RFQService, logg))
			r.Get("/stats/overview", controllers.RFQStats(deps.RFQService, logg))
			r.Get("/search/advanced", controllers.AdvancedSearch(deps.RFQService, logg))
			r.Get("/stage/{stage}", controllers.ListByStage(deps.RFQService, logg))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetRFQ(deps.RFQService, logg))
				r.Put("/", controllers.UpdateRFQ(deps.RFQService, logg))
				r.Delete("/", controllers.DeleteRFQ(deps.RFQService, logg))
				r.Put("/supplier-quote", controllers.UpdateSupplierQuote(deps.RFQService, logg))
				r.Put("/margin", controllers.UpdateMargin(deps.RFQService, logg))
				r.Put("/stage", controllers.UpdateStage(deps.RFQService, logg))
				r.Put("/urgency", controllers.UpdateUrgency(deps.RFQService, logg))
				r.Put("/confidence", controllers.UpdateConfidence(deps.RFQService, logg))
				r.Put("/complete", controllers.CompleteRFQ(deps.RFQService, logg))
				r.Post("/send-to-customer", controllers.SendToCustomer(deps.RFQService, logg))
				r.Post("/communication", controllers.AddCommunication(deps.RFQService, logg))
				r.Post("/note", controllers.AddNote(deps.RFQService, logg))
				r.Get("/activity", controllers.ListActivity(deps.RFQService, logg))
			})
		})

		r.Route("/manager", func(r chi.Router) {
			r.Use(middleware.RequireAggregateAccess(logg))
			r.Get("/rfqs/overview", controllers.ManagerOverview(deps.RFQService, logg))
		})
	})

	return r
}

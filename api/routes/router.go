package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/topicdesk/topicdesk-backend/api/controllers"
	"github.com/topicdesk/topicdesk-backend/api/middleware"
	"github.com/topicdesk/topicdesk-backend/internal/auth"
	"github.com/topicdesk/topicdesk-backend/internal/distributions"
	"github.com/topicdesk/topicdesk-backend/internal/profiles"
	"github.com/topicdesk/topicdesk-backend/internal/themes"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/config"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/logger"
	"github.com/topicdesk/topicdesk-backend/pkg/metrics"
	"github.com/topicdesk/topicdesk-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	registerService auth.RegisterService,
	profileService profiles.Service,
	themeService themes.Service,
	directoryService users.DirectoryService,
	distributionService distributions.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(httpMetrics),
	)

	// a nil *redis.Client must not reach the limiter as a non-nil interface
	var limiter middleware.RateLimitStore
	readiness := []controllers.ReadinessCheck{{Name: "db", Pinger: dbP}}
	if redisClient != nil {
		limiter = redisClient
		readiness = append(readiness, controllers.ReadinessCheck{Name: "redis", Pinger: redisClient})
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginAccountLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterAccountLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness...))
	})

	if cfg.Metrics.Enabled && gatherer != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(registerService, logg))
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(middleware.Actor(logg))

		r.Put("/update_student/{id}", controllers.UpdateStudent(profileService, logg))
		r.Put("/update_teacher/{id}", controllers.UpdateTeacher(profileService, logg))

		r.With(middleware.RequireActor(logg)).Post("/themes", controllers.CreateTheme(themeService, logg))
		r.Get("/listthemes", controllers.ListThemes(themeService, logg))

		r.Get("/teachers", controllers.ListTeachers(directoryService, logg))
		r.Get("/get_students", controllers.ListStudents(directoryService, logg))

		r.Route("/distributions", func(r chi.Router) {
			r.Get("/", controllers.ListDistributions(distributionService, logg))
			r.Post("/", controllers.CreateDistribution(distributionService, logg))
			r.Patch("/{id}/status", controllers.UpdateDistributionStatus(distributionService, logg))
		})
	})

	return r
}

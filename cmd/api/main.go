package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/topicdesk/topicdesk-backend/api/routes"
	"github.com/topicdesk/topicdesk-backend/internal/auth"
	"github.com/topicdesk/topicdesk-backend/internal/distributions"
	"github.com/topicdesk/topicdesk-backend/internal/profiles"
	"github.com/topicdesk/topicdesk-backend/internal/themes"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/config"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/logger"
	"github.com/topicdesk/topicdesk-backend/pkg/metrics"
	"github.com/topicdesk/topicdesk-backend/pkg/migrate"
	"github.com/topicdesk/topicdesk-backend/pkg/redis"
	"github.com/topicdesk/topicdesk-backend/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	var redisClient *redis.Client
	defer func() {
		closeErr := dbClient.Close()
		if redisClient != nil {
			closeErr = multierr.Append(closeErr, redisClient.Close())
		}
		err = multierr.Append(err, closeErr)
	}()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
	} else {
		logg.Warn(ctx, "redis not configured, auth rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	workflows := metrics.NewWorkflowMetrics(registry)
	hasher := security.NewPasswordHasher(cfg.Password)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:        users.NewRepository(dbClient.DB()),
		Hasher:          hasher,
		WorkflowMetrics: workflows,
	})
	if err != nil {
		return err
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		Tx:              dbClient,
		Hasher:          hasher,
		WorkflowMetrics: workflows,
	})
	if err != nil {
		return err
	}
	profileService, err := profiles.NewService(profiles.ServiceParams{
		Store:           dbClient,
		WorkflowMetrics: workflows,
	})
	if err != nil {
		return err
	}
	themeService, err := themes.NewService(themes.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}
	directoryService, err := users.NewDirectoryService(users.NewDirectoryRepository(dbClient.DB()))
	if err != nil {
		return err
	}
	distributionService, err := distributions.NewService(distributions.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"db_driver": cfg.DB.Driver,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			metrics.NewHTTPMetrics(registry),
			authService,
			registerService,
			profileService,
			themeService,
			directoryService,
			distributionService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(logCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

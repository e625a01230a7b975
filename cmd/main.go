package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"symphony/internal/cache"
	"symphony/internal/clients"
	"symphony/internal/config"
	"symphony/internal/handlers"
	"symphony/internal/repository"
	"symphony/internal/service"
	"symphony/internal/worker"
	"symphony/pkg/database"
	"symphony/pkg/logger"
	"symphony/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("symphony backend starting", "addr", cfg.ServerAddr(), "debug", cfg.App.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(database.Config{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		Debug:    cfg.App.Debug,
	}, log.Named("db"))
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := database.Migrate(db, log.Named("db")); err != nil {
		return err
	}

	var (
		redisClient *goredis.Client
		bundles     = cache.NewNoopBundleCache()
	)
	if cfg.Redis.Enabled {
		redisClient, err = redis.Connect(ctx, redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log.Named("redis"))
		if err != nil {
			log.Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			bundles = cache.NewRedisBundleCache(redisClient, cfg.Refresh.DashboardCacheTTL)
		}
	}

	projectRepo := repository.NewProjectRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)
	cacheRepo := repository.NewProjectCacheRepository(db)

	githubClient, err := clients.NewGitHubClient(clients.GitHubConfig{
		APIURL:  cfg.GitHub.APIURL,
		PerPage: cfg.GitHub.PerPage,
		Timeout: cfg.GitHub.Timeout,
	}, log.Named("github"))
	if err != nil {
		return err
	}
	slackClient := clients.NewSlackClient(clients.SlackConfig{
		APIURL:          cfg.Slack.APIURL,
		MessageLimit:    cfg.Slack.MessageLimit,
		UserLookupLimit: cfg.Slack.UserLookupLimit,
		Timeout:         cfg.Slack.Timeout,
	}, log.Named("slack"))

	clock := clockwork.NewRealClock()
	refreshService := service.NewRefreshService(
		projectRepo, integrationRepo, cacheRepo,
		githubClient, slackClient, bundles, clock,
		service.RefreshConfig{KeepStaleOnFailure: cfg.Refresh.KeepStaleOnFailure},
		log.Named("refresh"),
	)
	dashboardService := service.NewDashboardService(projectRepo, cacheRepo, bundles, refreshService, log.Named("dashboard"))
	projectService := service.NewProjectService(projectRepo, bundles, log.Named("projects"))
	integrationService := service.NewIntegrationService(integrationRepo, log.Named("integrations"))

	scheduler := worker.NewScheduler(log.Named("scheduler"), cfg.App.ShutdownTimeout)
	var sweeper handlers.SweepController
	if cfg.Refresh.Enabled {
		refreshWorker := worker.NewRefreshWorker(refreshService, clock, worker.RefreshWorkerConfig{
			Interval:     cfg.Refresh.Interval,
			InitialDelay: cfg.Refresh.InitialDelay,
		}, log.Named("worker.refresh"))
		scheduler.AddWorker(refreshWorker)
		sweeper = refreshWorker
	}

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Debug:             cfg.App.Debug,
		FrontendURL:       cfg.App.FrontendURL,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, handlers.Handlers{
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		Project:     handlers.NewProjectHandler(projectService),
		Integration: handlers.NewIntegrationHandler(integrationService),
		System:      handlers.NewSystemHandler(projectRepo, cacheRepo, redisClient, sweeper, log.Named("system")),
	}, log)

	ln, err := net.Listen("tcp", cfg.ServerAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ServerAddr(), err)
	}

	server := &http.Server{Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// the listener is bound, a scheduler failure must not take the server down
	if err := scheduler.Start(); err != nil {
		log.Errorw("scheduler failed to start", "error", err)
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			log.Errorw("http server failed", "error", err)
		}
	}

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("http server shutdown failed", "error", err)
	}

	log.Info("symphony backend stopped")
	return nil
}

package main

import (
	"context"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/dashboard"
	"github.com/karanch577/sneakerx-admin/internal/handler"
	"github.com/karanch577/sneakerx-admin/internal/notify"
	"github.com/karanch577/sneakerx-admin/internal/query"
	"github.com/karanch577/sneakerx-admin/internal/session"
	"github.com/karanch577/sneakerx-admin/pkg/config"
	"github.com/karanch577/sneakerx-admin/pkg/database"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/karanch577/sneakerx-admin/pkg/middleware"
	"github.com/karanch577/sneakerx-admin/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("sneakerx-console")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting SneakerX console", cfg.LogConfig()...)

	prometheus.InitMetrics(cfg.Metrics.Prefix)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", cfg.Metrics.Prefix))

	flags, err := flagStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize session store", zap.Error(err))
	}

	client, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}
	api := apiclient.NewAPI(client)

	feed := notify.NewFeed(0)
	notifier := notify.Multi{feed, notify.LogNotifier{Logger: log}}
	guard := session.NewGuard(api.Users, session.NewUserState(), flags, log)

	// Restore a session left by a previous run
	if d := guard.Enter(context.Background()); d == session.Allow {
		log.Info("Previous session restored")
	}

	dash := dashboard.New(api, guard, query.NewClient(log), notifier, log, dashboard.Options{PageSize: cfg.API.PageSize})
	defer dash.Close()

	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	handler.New(dash, feed).Register(e)

	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// flagStore selects where the login flag is persisted
func flagStore(cfg *config.Config) (session.FlagStore, error) {
	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		db, err := database.InitDB(&cfg.DB)
		if err != nil {
			return nil, err
		}
		return session.NewDBStore(db, session.FlagKey)
	case config.SessionStoreMemory:
		return &session.MemoryStore{}, nil
	default:
		return session.NewFileStore(cfg.Session.FilePath), nil
	}
}

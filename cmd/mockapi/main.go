package main

import (
	"github.com/karanch577/sneakerx-admin/internal/mockapi"
	"github.com/karanch577/sneakerx-admin/pkg/config"
	"github.com/karanch577/sneakerx-admin/pkg/jwtutil"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/karanch577/sneakerx-admin/pkg/middleware"
	"github.com/karanch577/sneakerx-admin/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("sneakerx-mockapi")
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
	log.Info("Starting SneakerX sandbox API", zap.String("environment", cfg.Server.Env))

	prometheus.InitMetrics(cfg.Metrics.Prefix)

	store := mockapi.NewStore()
	if cfg.Sandbox.Seed {
		if err := store.Seed(cfg.Sandbox.AdminEmail, cfg.Sandbox.AdminPassword); err != nil {
			log.Fatal("Failed to seed sandbox", zap.Error(err))
		}
		log.Info("Sandbox seeded", zap.String("admin_email", cfg.Sandbox.AdminEmail))
	}

	srv := mockapi.New(store, jwtutil.NewJWTUtil(&cfg.JWT))

	e := srv.Echo()
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowCredentials: true}))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())
	e.GET("/metrics", echo.WrapHandler(prometheus.Handler()))

	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port), zap.String("base_path", mockapi.BasePath))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appidentity "github.com/erp/masterdata/internal/application/identity"
	appmaster "github.com/erp/masterdata/internal/application/master"
	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/infrastructure/cache"
	"github.com/erp/masterdata/internal/infrastructure/config"
	"github.com/erp/masterdata/internal/infrastructure/logger"
	"github.com/erp/masterdata/internal/infrastructure/persistence"
	"github.com/erp/masterdata/internal/infrastructure/telemetry"
	"github.com/erp/masterdata/internal/interfaces/http/handler"
	"github.com/erp/masterdata/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("failed to enable database tracing", zap.Error(err))
		}
	}

	permCache := cache.NewPermissionCache(ctx, &cfg.Redis, log)
	defer func() { _ = permCache.Close() }()

	jwtService := auth.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenExpiration,
		cfg.JWT.RefreshTokenExpiration,
	)

	masterRepo := persistence.NewGormMasterRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	grantRepo := persistence.NewGormGrantRepository(db.DB)

	authService := appidentity.NewAuthService(userRepo, jwtService, log)
	permService := appidentity.NewPermissionService(grantRepo, permCache, log)
	masterService := appmaster.NewService(masterRepo, log)

	engine, err := router.New(router.Dependencies{
		Config:        cfg,
		Logger:        log,
		JWTService:    jwtService,
		AuthHandler:   handler.NewAuthHandler(authService, permService, log),
		MasterHandler: handler.NewMasterHandler(masterService, log),
		PermService:   permService,
		HealthCheck:   db.Ping,
	})
	if err != nil {
		log.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sujalbistaa/zevina/internal/config"
	"github.com/sujalbistaa/zevina/internal/db"
	routes "github.com/sujalbistaa/zevina/internal/http"
	"github.com/sujalbistaa/zevina/internal/storage"
	"github.com/sujalbistaa/zevina/internal/ws"
)

const shutdownTimeout = 5 * time.Second

func runServer(parent context.Context, cfg *config.Config, log *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Init(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	log.Info("Running database migrations")
	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupRoutes(ctx, router, newEnv(database, hub, cfg, log), cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server exiting")
	return nil
}

func newEnv(database *gorm.DB, hub *ws.Hub, cfg *config.Config, log *zap.Logger) *routes.Env {
	return &routes.Env{
		Storage: func(namespace string) storage.Storage {
			return storage.NewGormStorage(database, namespace)
		},
		Locks:     storage.NewLocks(),
		Hub:       hub,
		Upgrader:  ws.NewUpgrader(cfg.CORSOrigin),
		ChatDelay: cfg.ChatReplyDelay,
		Log:       log,
	}
}

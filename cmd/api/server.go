package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-todolists/backend/internal/config"
	"go-todolists/backend/internal/database"
	"go-todolists/backend/internal/logger"
	"go-todolists/backend/internal/metrics"
	"go-todolists/backend/internal/repositories"
	"go-todolists/backend/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func loadConfig() (*config.Config, *logrus.Logger, error) {
	envLoaded := config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.LogLevel)
	if !envLoaded {
		log.Debug("No .env file found, using environment variables only")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	return cfg, log, nil
}

// openStore は設定に応じたリポジトリを返します。インメモリストアの場合 db は nil です。
func openStore(cfg *config.Config, log *logrus.Logger) (repositories.TodoListRepository, *sql.DB, error) {
	if cfg.Store != config.StoreMySQL {
		log.Info("Using in-memory todo list store")
		return repositories.NewMemoryTodoListRepository(), nil, nil
	}

	if err := database.Migrate(cfg.DB, log); err != nil {
		return nil, nil, err
	}
	db, err := database.InitDB(cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("host", cfg.DB.Host).Info("Using MySQL todo list store")
	return repositories.NewMySQLTodoListRepository(db, log), db, nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	repo, db, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to open store")
		return err
	}
	if db != nil {
		defer db.Close()
	}

	router := routes.SetupRouter(routes.Options{
		Repo:        repo,
		DB:          db,
		FrontendURL: cfg.FrontendURL,
		Log:         log,
		Metrics:     metrics.New(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Server stopped unexpectedly")
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
		return err
	}
	log.Info("Server stopped")
	return nil
}

func runMigrate() error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store != config.StoreMySQL {
		log.Warnf("TODO_STORE=%s; migrations only apply to the %s store", cfg.Store, config.StoreMySQL)
	}
	if err := database.Migrate(cfg.DB, log); err != nil {
		log.WithError(err).Error("Migration failed")
		return err
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"warehouse/internal/adapter/handler"
	"warehouse/internal/adapter/storage"
	"warehouse/internal/config"
	"warehouse/internal/core/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect mysql")
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	log.Info("connected to mysql")

	if err := runMigrations(db, cfg.MigrationsPath); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect redis")
	}
	log.Info("connected to redis")

	store := storage.NewMySQLStore(db)
	cache := storage.NewRedisCache(rdb)

	productService := service.NewProductService(store, cache)
	stockService := service.NewStockService(store, cache)
	historyService := service.NewHistoryService(store)

	httpHandler := handler.NewHTTPHandler(productService, stockService, historyService)
	httpServer := &http.Server{
		Addr:    cfg.ServeAddress,
		Handler: handler.NewRouter(httpHandler),
	}

	go func() {
		log.WithField("address", cfg.ServeAddress).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}
	log.Info("HTTP server stopped")

	rdb.Close()
	db.Close()
	log.Info("connections closed")
}

func runMigrations(db *sqlx.DB, path string) error {
	driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "mysql", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

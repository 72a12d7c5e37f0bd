package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lustrahome/shop/internal/cart"
	"github.com/lustrahome/shop/internal/config"
	"github.com/lustrahome/shop/internal/es"
	"github.com/lustrahome/shop/internal/events"
	"github.com/lustrahome/shop/internal/favorites"
	"github.com/lustrahome/shop/internal/handlers"
	"github.com/lustrahome/shop/internal/logging"
	"github.com/lustrahome/shop/internal/service/token"
	"github.com/lustrahome/shop/internal/storage"
	httpserver "github.com/lustrahome/shop/internal/transport/http"
	"github.com/lustrahome/shop/internal/util"
)

const reindexDelay = 2 * time.Second

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	prod := events.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	blobs := storage.NewGormBlobStore(db)
	carts := cart.NewManager(blobs, logger)
	favs := favorites.NewManager(blobs, logger)

	reindex := util.NewDebouncer(reindexDelay, func() {
		logger.Info("search reindex requested")
	})
	defer reindex.Stop()

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		DB:               db,
		AuthHandler:      &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		ProductHandler:   &handlers.ProductHandler{DB: db, Producer: prod, JWTSecret: jwtSecret, Reindex: reindex},
		CatalogHandler:   &handlers.CatalogHandler{DB: db},
		CartHandler:      &handlers.CartHandler{DB: db, Carts: carts, Producer: prod, JWTSecret: jwtSecret},
		FavoritesHandler: &handlers.FavoritesHandler{Favorites: favs, Producer: prod, JWTSecret: jwtSecret},
		OrderHandler:     &handlers.OrderHandler{DB: db, Carts: carts, Producer: prod, JWTSecret: jwtSecret},
		ChatHandler:      &handlers.ChatHandler{DB: db, Producer: prod},
		SearchHandler:    &handlers.SearchHandler{ES: esClient, Index: configuration.ES_INDEX},
		ServiceHandler:   &token.TokenService{DB: db, RefreshSecret: refreshSecret, JWTSecret: jwtSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db handle error", "error", err)
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// Package server boots and runs the HTTP service: configuration, database,
// cache, storage, the live order board, and the API routes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/controllers"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/repositories"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/routes"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/services"
	"github.com/MatheusTerradasDEV/ChapaQuente/config"
	"github.com/MatheusTerradasDEV/ChapaQuente/internal/board"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/cache"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/database"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/logger"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/metrics"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/middleware"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/reqid"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/router"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/storage"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/workerpool"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ws"
)

const (
	shutdownTimeout = 10 * time.Second
	archiveWorkers  = 8
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	// Optional MongoDB log sink, layered over the stdout handler.
	if uri := config.MongoLogURI(); uri != "" {
		mh, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("server: mongo log sink disabled", "error", err)
		} else {
			defer mh.Close()
			logger.SetHandler(logger.NewMultiHandler(currentHandler(), mh))
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, running without it", "error", err)
	}
	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Live order board: bulk load, then a single reducer consumes the feed.
	orderRepo := repositories.NewOrderRepository(database.DB)
	b := board.New(orderRepo, board.NewFeed())
	if err := b.Load(); err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()
	b.SetBroadcast(func(payload []byte) { hub.Broadcast <- payload })
	go b.Run(ctx)

	pool := workerpool.New(archiveWorkers)
	defer pool.Shutdown()

	userRepo := repositories.NewUserRepository(database.DB)
	productRepo := repositories.NewProductRepository(database.DB)
	authService := services.NewAuthService(userRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, b, pool, config.RestaurantName())

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Orders:   controllers.NewOrderController(orderService, b),
		Products: controllers.NewProductController(productRepo),
		Feed:     controllers.NewFeedController(hub, b),
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func currentHandler() slog.Handler {
	if logger.L != nil {
		return logger.L.Handler()
	}
	return slog.NewTextHandler(os.Stdout, nil)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/handlers"
	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/routes"
	"catalog-api/pkg/log"
)

func main() {
	cfg := config.LoadConfig()

	mode := "development"
	if cfg.IsProduction() {
		mode = "production"
		gin.SetMode(gin.ReleaseMode)
	}

	logger := log.Init(log.ZapConfig{
		Level: cfg.LogLevel,
		Mode:  mode,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// El cliente de mongo se construye acá y se inyecta: su ciclo de vida
	// pertenece al entry point, no a un global.
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf(ctx, "failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Errorf(ctx, "error disconnecting from database: %v", err)
		}
	}()

	collection := client.Database(cfg.MongoDB).Collection("products")
	repo := repository.NewProductRepository(collection)
	handler := handlers.NewProductHandler(repo)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.ErrorNormalizer(logger, cfg.IsProduction()),
	)
	routes.RegisterRoutes(router, handler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof(ctx, "🚀 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf(ctx, "server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "forced shutdown: %v", err)
	}
}

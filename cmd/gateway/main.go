package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/znapfile/edge-gateway/internal/api/http"
	"github.com/znapfile/edge-gateway/internal/api/http/handlers"
	"github.com/znapfile/edge-gateway/internal/assets"
	"github.com/znapfile/edge-gateway/internal/auth"
	"github.com/znapfile/edge-gateway/internal/config"
	"github.com/znapfile/edge-gateway/internal/domain"
	"github.com/znapfile/edge-gateway/internal/events"
	"github.com/znapfile/edge-gateway/internal/observability"
	"github.com/znapfile/edge-gateway/internal/service"
	"github.com/znapfile/edge-gateway/internal/store"
	"github.com/znapfile/edge-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	passwordHash, err := auth.HashPassword(cfg.Demo.Password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash demo credential", zap.Error(err))
	}
	accounts := store.NewMemoryStore(&domain.Account{
		ID:           cfg.Demo.UserID,
		Email:        cfg.Demo.Email,
		Username:     cfg.Demo.Username,
		Plan:         cfg.Demo.Plan,
		PasswordHash: passwordHash,
	})

	authService := service.NewAuthService(cfg.Auth, accounts, dispatcher)
	uploadService := service.NewUploadService(cfg.Upload, dispatcher)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accounts)

	collaborator, err := assets.New(cfg.Assets)
	if err != nil {
		logger.Fatal("failed to init asset collaborator", zap.Error(err))
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Upload:         handlers.NewUploadHandler(uploadService),
		AuthMiddleware: authMiddleware,
		Assets:         collaborator,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

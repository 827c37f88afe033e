package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/miniorder-service/internal/api/http"
	"github.com/spec-kit/miniorder-service/internal/api/http/handlers"
	"github.com/spec-kit/miniorder-service/internal/config"
	"github.com/spec-kit/miniorder-service/internal/events"
	"github.com/spec-kit/miniorder-service/internal/observability"
	"github.com/spec-kit/miniorder-service/internal/persistence"
	"github.com/spec-kit/miniorder-service/internal/repository"
	"github.com/spec-kit/miniorder-service/internal/service"
	"github.com/spec-kit/miniorder-service/internal/session"
	"github.com/spec-kit/miniorder-service/internal/wechat"
	"github.com/spec-kit/miniorder-service/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	exchanger, err := wechat.NewClient(cfg.WeChat, logger)
	if err != nil {
		logger.Fatal("failed to init wechat client", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	identityService := service.NewIdentityService(service.IdentityDependencies{
		Exchanger:    exchanger,
		UserRepo:     userRepo,
		Sessions:     session.NewStore(redis.Client, cfg.Session.SessionKeyTTLHours),
		TokenManager: session.NewTokenManager(cfg.Session.TokenSecret, cfg.Session.TokenTTLMinutes),
		ProfileCache: service.NewProfileCache(redis.Client, cfg.Session.ProfileCacheSeconds),
		Dispatcher:   dispatcher,
	}, logger)
	orderService := service.NewOrderService(orderRepo, dispatcher, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Identity: handlers.NewIdentityHandler(identityService),
		Orders:   handlers.NewOrdersHandler(orderService),
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

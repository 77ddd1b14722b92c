package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/Jgilbert-dev/inspectrixV4/api/handler"
	"github.com/Jgilbert-dev/inspectrixV4/internal/config"
	"github.com/Jgilbert-dev/inspectrixV4/internal/infrastructure/buffer"
	"github.com/Jgilbert-dev/inspectrixV4/internal/infrastructure/monitor"
	pgInfra "github.com/Jgilbert-dev/inspectrixV4/internal/infrastructure/postgres"
	redisInfra "github.com/Jgilbert-dev/inspectrixV4/internal/infrastructure/redis"
	"github.com/Jgilbert-dev/inspectrixV4/internal/middleware"
	"github.com/Jgilbert-dev/inspectrixV4/internal/router"
	"github.com/Jgilbert-dev/inspectrixV4/internal/services"
	"github.com/Jgilbert-dev/inspectrixV4/internal/services/lifecycle"
	"github.com/Jgilbert-dev/inspectrixV4/pkg/httpcontext"
	"github.com/Jgilbert-dev/inspectrixV4/pkg/logger"
	"github.com/Jgilbert-dev/inspectrixV4/repository/postgres"
	redisRepo "github.com/Jgilbert-dev/inspectrixV4/repository/redis"
	authUC "github.com/Jgilbert-dev/inspectrixV4/usecase/auth"
	profileUC "github.com/Jgilbert-dev/inspectrixV4/usecase/profile"
	reportUC "github.com/Jgilbert-dev/inspectrixV4/usecase/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	identityRepo := postgres.NewIdentityRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.RefreshTTL)
	resetRepo := redisRepo.NewResetTokenRepository(redisClient)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		reportRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
			Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(identityRepo, userRepo, orgRepo, sessionRepo, resetRepo,
		authUC.TokenConfig{
			Secret:     cfg.Auth.JWTSecret,
			Issuer:     cfg.Auth.JWTIssuer,
			AccessTTL:  cfg.Auth.AccessTTL,
			RefreshTTL: cfg.Auth.RefreshTTL,
		},
		zapLogger,
	)
	profileUseCase := profileUC.New(userRepo, bufferBridge, zapLogger)
	reportUseCase := reportUC.New(reportRepo, bufferBridge, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Report:  apiHandler.NewReportHandler(reportUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.Auth.JWTSecret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

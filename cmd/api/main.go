package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"skin-analysis/internal/config"
	"skin-analysis/internal/db"
	"skin-analysis/internal/diagnostic"
	apihttp "skin-analysis/internal/http"
	"skin-analysis/internal/repository"
	"skin-analysis/internal/service"
	"skin-analysis/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	photoSessionRepo := repository.NewPgPhotoSessionRepository(pool)
	analysisRepo := repository.NewPgAnalysisRepository(pool)
	doctorRepo := repository.NewPgDoctorRepository(pool)

	signer := storage.NewHTTPResolver(cfg.StorageBaseURL, cfg.StorageServiceKey, cfg.SignedURLTTLSeconds, nil)
	diagClient := diagnostic.NewHTTPClient(
		cfg.DiagnosticBaseURL,
		cfg.DiagnosticAPIKey,
		time.Duration(cfg.DiagnosticTimeoutSeconds)*time.Second,
		logger,
	)

	var (
		limiter    service.UsageLimiter
		tokenStore service.RefreshTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisUsageLimiter(redisClient, cfg.MonthlyAnalysisLimit)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if limiter == nil {
		logger.Warn("redis not configured, monthly usage counter is in-memory only")
		limiter = service.NewMemoryUsageLimiter(cfg.MonthlyAnalysisLimit)
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	analysisSvc := service.NewAnalysisService(
		photoSessionRepo,
		analysisRepo,
		signer,
		diagClient,
		limiter,
		cfg.DiagnosticLocale,
		time.Duration(cfg.DiagnosticTimeoutSeconds)*time.Second,
		logger,
	)
	authSvc := service.NewAuthService(logger, doctorRepo)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, jwtSvc)
	analysisHandler := apihttp.NewAnalysisHandler(logger, analysisSvc)
	router := apihttp.NewRouter(logger, jwtSvc, authHandler, analysisHandler, func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return db.Ping(pingCtx, pool)
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"robo-advisor/internal/config"
	"robo-advisor/internal/db"
	"robo-advisor/internal/email"
	apihttp "robo-advisor/internal/http"
	"robo-advisor/internal/repository"
	"robo-advisor/internal/scoring"
	"robo-advisor/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	questionRepo := repository.NewPgQuestionRepository(pool)
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, pool, logger); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		catalog, err := db.LoadCatalog()
		if err != nil {
			logger.Fatal("load catalog", zap.Error(err))
		}
		if err := repository.SeedQuestions(ctx, questionRepo, catalog); err != nil {
			logger.Fatal("seed catalog", zap.Error(err))
		}
		logger.Info("catalog seeded", zap.Int("questions", len(catalog)))
	}

	userRepo := repository.NewPgUserRepository(pool)
	submissionRepo := repository.NewPgSubmissionRepository(pool)
	metricsRepo := repository.NewPgMetricsRepository(pool)
	recommendationRepo := repository.NewPgRecommendationRepository(pool)

	emailSender := email.NewDisabledSender("smtp not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
			emailSender = email.NewDisabledSender(err.Error())
		} else {
			emailSender = sender
		}
	}

	signinWindow := time.Duration(cfg.SigninWindowMinutes) * time.Minute
	var (
		signinLimiter service.SigninRateLimiter
		revocations   service.TokenRevocationStore
		redisClient   *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		} else {
			signinLimiter = service.NewRedisSigninRateLimiter(redisClient, signinWindow, cfg.SigninMaxAttempts)
			revocations = service.NewRedisTokenRevocationStore(redisClient)
		}
		cancel()
	}
	if signinLimiter == nil {
		signinLimiter = service.NewMemorySigninRateLimiter(signinWindow, cfg.SigninMaxAttempts)
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute, revocations)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	scorer := scoring.NewScorer(scoring.Options{LegacyDependents: cfg.LegacyDependents})
	if cfg.LegacyDependents {
		logger.Warn("legacy dependents scoring enabled")
	}

	userSvc := service.NewUserService(logger, userRepo, signinLimiter)
	questionnaireSvc := service.NewQuestionnaireService(logger, userRepo, questionRepo, submissionRepo, scorer)
	portfolioSvc := service.NewPortfolioService(logger, userRepo, metricsRepo, recommendationRepo, emailSender, cfg.Currency)

	router := apihttp.NewRouter(
		logger,
		cfg.CORSOrigins,
		jwtSvc,
		apihttp.NewAuthHandler(logger, userSvc, jwtSvc, cfg.CookieSecure),
		apihttp.NewQuestionnaireHandler(logger, questionnaireSvc),
		apihttp.NewPortfolioHandler(logger, portfolioSvc),
		func(ctx context.Context) error { return db.Ping(ctx, pool) },
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

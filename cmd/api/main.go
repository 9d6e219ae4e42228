package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm/logger"

	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/config"
	"github.com/justsurfingit/govconnect/internal/database"
	"github.com/justsurfingit/govconnect/internal/handlers"
	"github.com/justsurfingit/govconnect/internal/middleware"
	"github.com/justsurfingit/govconnect/internal/services"
	"github.com/justsurfingit/govconnect/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (.env, optional YAML file, environment)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Logging
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(log)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Database Connection
	dbLogLevel := logger.Warn
	if cfg.LogLevel == "debug" {
		dbLogLevel = logger.Info
	}
	db, err := database.Connect(database.Config{
		Driver:          cfg.DatabaseDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        dbLogLevel,
	})
	if err != nil {
		return err
	}
	defer database.Close(db)

	// 4. Tokens and uploads
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	uploads, err := storage.NewLocalStore(cfg.UploadDir, cfg.MaxFileSize)
	if err != nil {
		return err
	}

	// 5. LLM client, optional: AI routes answer 503 without a key
	var llmService *services.LLMService
	if cfg.GeminiAPIKey != "" {
		client, err := services.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		llmService = services.NewLLMService(client)
		log.Info("gemini client ready", "model", cfg.GeminiModel)
	} else {
		log.Warn("GEMINI_API_KEY not set, AI features disabled")
	}

	// 6. Rate limiter: shared through Redis when configured
	var limiter middleware.Limiter = middleware.NewMemoryLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, rate limiter will fail open", "error", err)
		}
		limiter = middleware.NewRedisLimiter(rdb)
	}

	// 7. Initialize Core Services
	discussionService := services.NewDiscussionService(db)
	router := handlers.NewRouter(handlers.RouterDependencies{
		DB:             db,
		Tokens:         tokens,
		Uploads:        uploads,
		Logger:         log,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		RateLimits: handlers.RateLimits{
			Limiter: limiter,
			Auth:    cfg.AuthRateLimit,
			Apply:   cfg.ApplyRateLimit,
			Window:  cfg.RateLimitWindow,
		},
		AuthService:          services.NewAuthService(db, tokens),
		JobService:           services.NewJobService(db),
		ApplicationService:   services.NewApplicationService(db),
		DiscussionService:    discussionService,
		CompanyUpdateService: services.NewCompanyUpdateService(db),
		ResumeService:        services.NewResumeService(db, uploads, llmService),
		SearchService:        services.NewSearchService(db, discussionService),
		StatsService:         services.NewStatsService(db),
		LLMService:           llmService,
	})

	// 8. Serve until interrupted
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

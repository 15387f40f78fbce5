package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"user-graph/internal/config"
	"user-graph/internal/db"
	"user-graph/internal/email"
	"user-graph/internal/graphql"
	apihttp "user-graph/internal/http"
	"user-graph/internal/repository"
	"user-graph/internal/service"

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

	gdb, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	if err := db.Ping(ctx, gdb); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	if err := db.RunMigrations(gdb); err != nil {
		if cfg.MigrateStrict {
			logger.Fatal("migrations failed", zap.Error(err))
		}
		logger.Warn("migrations failed, continuing per MIGRATE_STRICT=false", zap.Error(err))
	} else {
		logger.Info("migrations applied")
	}

	jwtSvc, err := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatal("jwt init", zap.Error(err))
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	loginWindow := time.Duration(cfg.LoginRateWindowMinutes) * time.Minute
	var loginLimiter service.LoginRateLimiter
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
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, loginWindow, cfg.LoginRateMax)
		}
		cancel()
	}
	if loginLimiter == nil {
		loginLimiter = service.NewLoginRateLimiter(loginWindow, cfg.LoginRateMax)
	}

	userRepo := repository.NewGormUserRepository(gdb)
	userSvc := service.NewUserService(logger, userRepo, emailSender, loginLimiter)

	if err := userSvc.SeedDefaultUser(ctx); err != nil {
		logger.Fatal("seed default user", zap.Error(err))
	}

	resolver := graphql.NewResolver(logger, userSvc, jwtSvc)
	schema, err := graphql.ParseSchema(resolver)
	if err != nil {
		logger.Fatal("parse graphql schema", zap.Error(err))
	}

	router := apihttp.NewRouter(logger, schema, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.Port))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

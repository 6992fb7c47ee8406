package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jobconnect/jobconnect-go/internal/authz"
	"github.com/jobconnect/jobconnect-go/internal/cache"
	"github.com/jobconnect/jobconnect-go/internal/config"
	"github.com/jobconnect/jobconnect-go/internal/crypto"
	"github.com/jobconnect/jobconnect-go/internal/handler"
	"github.com/jobconnect/jobconnect-go/internal/middleware"
	"github.com/jobconnect/jobconnect-go/internal/repository"
	"github.com/jobconnect/jobconnect-go/internal/service"
	"github.com/jobconnect/jobconnect-go/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	tokens, err := crypto.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		slog.Error("token service setup failed", "error", err)
		os.Exit(1)
	}
	cookie := session.NewCookie(cfg.CookieName, cfg.IsProduction(), cfg.JWTExpiry)

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	var (
		statusWriter service.StatusWriter
		gateOpts     []authz.Option
	)
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("redis unavailable, live status checks disabled", "error", err)
		} else {
			defer rdb.Close()
			statusCache := cache.NewStatusCache(rdb, userRepo, cfg.StatusCacheTTL)
			statusWriter = statusCache
			if cfg.LiveStatusCheck {
				gateOpts = append(gateOpts, authz.WithLiveStatus(statusCache))
			}
		}
	}
	if cfg.LiveStatusCheck && len(gateOpts) == 0 {
		slog.Warn("LIVE_STATUS_CHECK requires redis, gate will trust token snapshots")
	}
	gate := authz.NewGate(tokens, gateOpts...)

	router := handler.NewRouter(handler.Routes{
		Auth:         handler.NewAuthHandler(service.NewAuthService(userRepo, tokens, cfg.AllowAdminSignup), cookie),
		Users:        handler.NewUserHandler(service.NewUserService(userRepo, statusWriter)),
		Jobs:         handler.NewJobHandler(service.NewJobService(jobRepo, userRepo)),
		Applications: handler.NewApplicationHandler(service.NewApplicationService(appRepo, jobRepo)),
		Pages:        handler.NewPageHandler(service.NewDashboardService(userRepo, jobRepo, appRepo)),
		Gate:         gate,
		Verifier:     tokens,
		Cookie:       cookie,
		AuthLimit:    middleware.RateLimit(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "live_status", len(gateOpts) > 0)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

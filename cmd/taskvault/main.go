package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskvault/taskvault/internal/admin"
	"github.com/taskvault/taskvault/internal/app"
	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/platform/db"
	"github.com/taskvault/taskvault/internal/todos"
	"github.com/taskvault/taskvault/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	tokenManager := auth.NewTokenManager([]byte(cfg.JWTSecret))
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, tokenManager, cfg.TokenTTL)
	authMiddleware := auth.Middleware{Tokens: tokenManager, Logger: logger}

	todoRepo := todos.NewRepository(dbpool)
	todoService := todos.NewService(todoRepo)
	todoHandler := todos.NewHandler(logger, todoService)

	usersHandler := users.NewHandler(logger, authService)
	adminHandler := admin.NewHandler(logger, todoService)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    authHandler,
		TodosHandler:   todoHandler,
		UsersHandler:   usersHandler,
		AdminHandler:   adminHandler,
		AuthMiddleware: authMiddleware,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

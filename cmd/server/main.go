package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Justinvibez/prime-vault/internal/config"
	"github.com/Justinvibez/prime-vault/internal/handler"
	"github.com/Justinvibez/prime-vault/internal/metrics"
	"github.com/Justinvibez/prime-vault/internal/middleware"
	"github.com/Justinvibez/prime-vault/internal/repository/postgres"
	"github.com/Justinvibez/prime-vault/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg := config.Load()

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	logger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("Prime Vault server starting")

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations applied")

	store := postgres.NewStore(db)
	collector := metrics.NewCollector()

	accountService := service.NewAccountService(store, logger.With(zap.String("component", "AccountService")))
	authService := service.NewAuthService(store)
	transferService := service.NewTransferService(store, collector, logger.With(zap.String("component", "TransferService")))
	adminService := service.NewAdminService(store, collector, logger.With(zap.String("component", "AdminService")))
	supportService := service.NewSupportService(store, logger.With(zap.String("component", "SupportService")))

	authHandler := handler.NewAuthHandler(accountService, authService)
	accountHandler := handler.NewAccountHandler(accountService)
	transferHandler := handler.NewTransferHandler(transferService)
	adminHandler := handler.NewAdminHandler(adminService)
	supportHandler := handler.NewSupportHandler(supportService)

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/accounts/me", accountHandler.Me)
			authed.POST("/transfers", transferHandler.Transfer)
			authed.GET("/transactions", transferHandler.ListTransactions)
			authed.POST("/support", supportHandler.Submit)

			admin := authed.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/deposit", adminHandler.Deposit)
				admin.POST("/authorize", adminHandler.Authorize)
			}
		}
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"

	adminUseCase "github.com/akruglov/escrow-bot/internal/domain/usecase/admin"
	dealUseCase "github.com/akruglov/escrow-bot/internal/domain/usecase/deal"
	ledgerUseCase "github.com/akruglov/escrow-bot/internal/domain/usecase/ledger"
	userUseCase "github.com/akruglov/escrow-bot/internal/domain/usecase/user"

	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/api/handler"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/api/routes"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/database"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/logger"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/repository"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/telegram"
	timeProvider "github.com/akruglov/escrow-bot/internal/infrastructure/adapter/time"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/token"
	"github.com/akruglov/escrow-bot/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == "production")
	appLogger.SetLevel(parseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := database.Migrate(dbManager.DB(), appLogger); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)
	dealRepo := repository.NewDealRepository(dbManager.DB(), appLogger)
	balanceRepo := repository.NewBalanceRepository(dbManager.DB(), appLogger)
	withdrawalRepo := repository.NewWithdrawalRepository(dbManager.DB(), appLogger)
	adminRepo := repository.NewAdminRepository(dbManager.DB(), appLogger)

	// Connect to Telegram
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		appLogger.Error("Failed to connect to Telegram", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Notifications go through a buffered queue; sends never block the flows
	notifier := telegram.NewNotifier(botAPI, cfg.Telegram.OwnerID, cfg.Telegram.NotifyQueueLen, appLogger)
	notifier.Start()
	defer notifier.Stop()

	// Initialize use cases
	authority := adminUseCase.NewAuthority(cfg.Telegram.OwnerID, adminRepo, tp, appLogger)
	users := userUseCase.NewUserUseCase(userRepo, tp, appLogger)
	deals := dealUseCase.NewDealUseCase(dealRepo, authority, token.NewGenerator(), notifier, tp, appLogger)
	ledgerImpl := ledgerUseCase.NewLedgerUseCase(balanceRepo, withdrawalRepo, authority, notifier, tp, appLogger)

	// Start the bot long-poll loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot := telegram.NewBot(botAPI, cfg.Telegram, users, deals, ledgerImpl, authority, appLogger)
	go bot.Run(ctx)

	// Initialize the ops API
	healthHandler := handler.NewHealthHandler()
	ledgerHandler := handler.NewLedgerHandler(ledgerImpl, appLogger)
	dealHandler := handler.NewDealHandler(deals, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, healthHandler, ledgerHandler, dealHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting ops API", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start ops API", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut everything down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...", nil)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Exited gracefully", nil)
}

func parseLogLevel(level string) coreport.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return coreport.LogLevelDebug
	case "warn":
		return coreport.LogLevelWarn
	case "error":
		return coreport.LogLevelError
	default:
		return coreport.LogLevelInfo
	}
}

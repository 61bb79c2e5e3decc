package routes

import (
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/api/handler"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the ops API
func SetupRoutes(
	router *gin.Engine,
	healthHandler *handler.HealthHandler,
	ledgerHandler *handler.LedgerHandler,
	dealHandler *handler.DealHandler,
) {
	router.GET("/health", healthHandler.Check)

	userRoutes := router.Group("/user")
	{
		userRoutes.GET("/:userId/balance", ledgerHandler.GetBalance)
	}

	dealRoutes := router.Group("/deals")
	{
		dealRoutes.GET("", dealHandler.GetByStatus)
		dealRoutes.GET("/recent", dealHandler.GetRecent)
	}

	router.GET("/withdrawals/pending", ledgerHandler.GetPendingWithdrawals)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}

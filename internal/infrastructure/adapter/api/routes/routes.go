package routes

import (
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	walletHandler *handler.WalletHandler,
	validator middleware.TokenValidator,
	logger coreport.Logger,
) {
	// Public routes
	authRoutes := router.Group("/auth")
	{
		// POST /auth/register
		authRoutes.POST("/register", authHandler.Register)

		// POST /auth/login
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated session routes
	sessionRoutes := router.Group("/auth", middleware.BearerAuth(validator, logger))
	{
		// POST /auth/logout
		sessionRoutes.POST("/logout", authHandler.Logout)

		// POST /auth/logout-all
		sessionRoutes.POST("/logout-all", authHandler.LogoutAll)
	}

	// Wallet routes, all behind bearer auth
	walletRoutes := router.Group("/wallet", middleware.BearerAuth(validator, logger))
	{
		// GET /wallet/balance
		walletRoutes.GET("/balance", walletHandler.GetBalance)

		// POST /wallet/fund
		walletRoutes.POST("/fund", walletHandler.Fund)

		// POST /wallet/withdraw
		walletRoutes.POST("/withdraw", walletHandler.Withdraw)

		// POST /wallet/transfer
		walletRoutes.POST("/transfer", walletHandler.Transfer)

		// GET /wallet/transactions
		walletRoutes.GET("/transactions", walletHandler.GetTransactions)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
}

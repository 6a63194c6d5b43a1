package router

import (
	"telcoReco/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/profile", handler.GetProfile, authRequired)
	users.PUT("/profile", handler.UpdateProfile, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupTransactionRoutes(api *echo.Group, handler *rest.TransactionHandler, authRequired echo.MiddlewareFunc) {
	transactions := api.Group("/transactions", authRequired)

	transactions.POST("", handler.Purchase)
	transactions.GET("", handler.History)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")

	reco.GET("", handler.GetMyRecommendations, authRequired)
	reco.POST("/refresh", handler.Refresh, authRequired)
	reco.GET("/ml/health", handler.MLHealth)
}

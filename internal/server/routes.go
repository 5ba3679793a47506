package routes

import (
	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	// Proxy del proveedor de precios
	api := router.Group("/api")
	{
		api.GET("/crypto/listings", middleware.GetCryptoListings)
		api.GET("/crypto/historical/:id", middleware.GetHistoricalPrices)
	}

	// Altas, bajas y listado de activos
	router.POST("/assets", middleware.CreateAsset)
	router.GET("/assets", middleware.GetAssets)
	router.DELETE("/assets/:id", middleware.DeleteAsset)

	// Vistas derivadas del portafolio
	router.GET("/portfolio", middleware.GetPortfolio)
	router.GET("/portfolio/chart", middleware.GetPortfolioChart)
}

package middleware

import (
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

// Variable global para almacenar la instancia del actualizador de precios
var priceUpdaterInstance *services.PriceUpdater

// SetPriceUpdater establece la instancia del actualizador de precios
func SetPriceUpdater(updater *services.PriceUpdater) {
	priceUpdaterInstance = updater
}

// GetPriceUpdater obtiene la instancia del actualizador de precios
func GetPriceUpdater() *services.PriceUpdater {
	return priceUpdaterInstance
}

// GetPortfolio devuelve el resumen del portafolio: una fila por activo con sus
// métricas más los totales. Sirve el resumen en caché del actualizador si existe.
func GetPortfolio(c *gin.Context) {
	if updater := GetPriceUpdater(); updater != nil {
		if summary, exists := updater.CachedSummary(); exists {
			c.JSON(http.StatusOK, summary)
			return
		}
	}

	// Sin caché todavía: calcular en vivo con el último snapshot de precios
	assets, err := assetRepo.GetAssets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los activos"})
		return
	}

	prices, lastUpdated := currentPrices()
	c.JSON(http.StatusOK, services.BuildPortfolioSummary(assets, prices, lastUpdated))
}

// GetPortfolioChart devuelve las series de ganancia/pérdida interpoladas para el gráfico
func GetPortfolioChart(c *gin.Context) {
	assets, err := assetRepo.GetAssets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los activos"})
		return
	}

	prices, _ := currentPrices()
	c.JSON(http.StatusOK, services.GenerateCurves(assets, prices, time.Now()))
}

// currentPrices devuelve el último snapshot de precios, o uno vacío si el
// actualizador todavía no corrió (las métricas caen al precio de compra)
func currentPrices() (models.CurrentPriceMap, time.Time) {
	if updater := GetPriceUpdater(); updater != nil {
		return updater.Snapshot(), updater.LastUpdated()
	}
	return models.CurrentPriceMap{}, time.Time{}
}

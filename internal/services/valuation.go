package services

import (
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
)

// ComputeMetrics calcula las métricas derivadas de un activo con el precio unitario actual.
// Es una función pura: mismo activo y mismo precio producen siempre el mismo resultado.
func ComputeMetrics(asset models.Asset, currentPrice float64) models.AssetMetrics {
	totalInvested := asset.PricePaid * asset.Quantity
	currentValue := currentPrice * asset.Quantity
	profitLoss := currentValue - totalInvested

	// Si no hay inversión el porcentaje queda en 0 en lugar de propagar NaN
	profitLossPercentage := 0.0
	if totalInvested > 0 {
		profitLossPercentage = profitLoss / totalInvested * 100
	}

	return models.AssetMetrics{
		TotalInvested:        totalInvested,
		CurrentValue:         currentValue,
		ProfitLoss:           profitLoss,
		ProfitLossPercentage: profitLossPercentage,
	}
}

// CurrentPriceOrFallback busca el precio vivo del activo en el snapshot de precios.
// Si el proveedor todavía no respondió se usa el precio de compra, lo que deja
// la ganancia/pérdida en cero en lugar de un valor indefinido.
func CurrentPriceOrFallback(prices models.CurrentPriceMap, asset models.Asset) float64 {
	if price, exists := prices[asset.CryptoID]; exists {
		return price
	}
	return asset.PricePaid
}

// BuildPortfolioSummary arma el resumen del portafolio: una fila por activo
// con sus métricas más los totales agregados
func BuildPortfolioSummary(assets []models.Asset, prices models.CurrentPriceMap, lastUpdated time.Time) *models.PortfolioSummary {
	summary := &models.PortfolioSummary{
		Assets:      make([]models.AssetRow, 0, len(assets)),
		LastUpdated: lastUpdated,
	}

	for _, asset := range assets {
		currentPrice := CurrentPriceOrFallback(prices, asset)
		metrics := ComputeMetrics(asset, currentPrice)

		summary.Assets = append(summary.Assets, models.AssetRow{
			Asset:        asset,
			CurrentPrice: currentPrice,
			Metrics:      metrics,
		})

		summary.TotalInvested += metrics.TotalInvested
		summary.TotalCurrentValue += metrics.CurrentValue
	}

	summary.TotalProfit = summary.TotalCurrentValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.ProfitPercentage = summary.TotalProfit / summary.TotalInvested * 100
	}

	return summary
}

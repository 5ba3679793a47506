package models

import "time"

// AssetMetrics contiene las métricas derivadas de un activo.
// Se recalculan en cada consulta, nunca se persisten.
type AssetMetrics struct {
	TotalInvested        float64 `json:"total_invested"`         // PricePaid * Quantity
	CurrentValue         float64 `json:"current_value"`          // Precio actual * Quantity
	ProfitLoss           float64 `json:"profit_loss"`            // Ganancia o pérdida absoluta
	ProfitLossPercentage float64 `json:"profit_loss_percentage"` // Porcentaje sobre lo invertido (0 si no hay inversión)
}

// AssetRow es una fila de la tabla del portafolio
type AssetRow struct {
	Asset        Asset        `json:"asset"`
	CurrentPrice float64      `json:"current_price"` // Precio vivo, o PricePaid si el proveedor todavía no respondió
	Metrics      AssetMetrics `json:"metrics"`
}

// PortfolioSummary representa el resumen del portafolio del usuario
type PortfolioSummary struct {
	Assets            []AssetRow `json:"assets"`
	TotalCurrentValue float64    `json:"total_current_value"` // Valor total actual de todos los activos
	TotalInvested     float64    `json:"total_invested"`      // Total invertido
	TotalProfit       float64    `json:"total_profit"`        // Ganancia o pérdida total
	ProfitPercentage  float64    `json:"profit_percentage"`   // Porcentaje de ganancia/pérdida
	LastUpdated       time.Time  `json:"last_updated"`
}

// CurveSeries es la serie interpolada de ganancia/pérdida de un activo
type CurveSeries struct {
	Label       string     `json:"label"`
	Data        []*float64 `json:"data"` // nil antes de la fecha de compra, el gráfico salta esos puntos
	BorderColor string     `json:"border_color"`
}

// PortfolioChart contiene los datos formateados para el gráfico de líneas
type PortfolioChart struct {
	Labels   []string      `json:"labels"` // Fechas en formato 2006-01-02
	Datasets []CurveSeries `json:"datasets"`
}

package services

import (
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
)

const axisDateFormat = "2006-01-02"

// Paleta de colores para las series del gráfico
var curveColors = []string{
	"#4F46E5", // Indigo
	"#06B6D4", // Cyan
	"#10B981", // Esmeralda
	"#F59E0B", // Ámbar
	"#EF4444", // Rojo
	"#8B5CF6", // Violeta
}

// dayStart normaliza un instante a la medianoche UTC de su día calendario
func dayStart(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateDateAxis genera el eje global de fechas: un día calendario por entrada,
// desde la compra más antigua hasta hoy inclusive. Sin activos el eje queda vacío.
func GenerateDateAxis(assets []models.Asset, today time.Time) []string {
	if len(assets) == 0 {
		return nil
	}

	earliest := dayStart(assets[0].DateBought)
	for _, asset := range assets[1:] {
		if day := dayStart(asset.DateBought); day.Before(earliest) {
			earliest = day
		}
	}

	end := dayStart(today)
	var dates []string
	for day := earliest; !day.After(end); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day.Format(axisDateFormat))
	}
	return dates
}

// smoothstep aplica la curva de easing cúbica t²(3−2t), con t acotado a [0,1].
// Tiene velocidad cero en ambos extremos, lo que da un arranque y una llegada suaves.
func smoothstep(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// GenerateCurves genera una serie de ganancia/pérdida por activo, interpolada día a día
// sobre el eje global con easing smoothstep entre cero (en la compra) y la
// ganancia/pérdida final (hoy). La interpolación es puramente visual: no usa
// precios históricos reales, solo el valor final conocido.
func GenerateCurves(assets []models.Asset, prices models.CurrentPriceMap, today time.Time) *models.PortfolioChart {
	chart := &models.PortfolioChart{
		Labels:   GenerateDateAxis(assets, today),
		Datasets: []models.CurveSeries{},
	}
	if len(chart.Labels) == 0 {
		return chart
	}

	index := make(map[string]int, len(chart.Labels))
	for i, date := range chart.Labels {
		index[date] = i
	}
	last := len(chart.Labels) - 1

	for i, asset := range assets {
		// Siempre se usa el precio vivo con PricePaid como respaldo,
		// nunca el current_value cacheado al alta
		currentPrice := CurrentPriceOrFallback(prices, asset)
		finalProfitLoss := ComputeMetrics(asset, currentPrice).ProfitLoss

		boughtIndex := index[dayStart(asset.DateBought).Format(axisDateFormat)]
		points := make([]*float64, len(chart.Labels))

		for j := boughtIndex; j <= last; j++ {
			// Si el activo se compró en la última fecha del eje el avance es 1,
			// no una división por cero
			progress := 1.0
			if last > boughtIndex {
				progress = float64(j-boughtIndex) / float64(last-boughtIndex)
			}
			value := finalProfitLoss * smoothstep(progress)
			points[j] = &value
		}

		// El último punto debe coincidir exacto con la ganancia/pérdida de la tabla
		finalValue := finalProfitLoss
		points[last] = &finalValue

		chart.Datasets = append(chart.Datasets, models.CurveSeries{
			Label:       asset.Name + " P/L",
			Data:        points,
			BorderColor: curveColors[i%len(curveColors)],
		})
	}

	return chart
}

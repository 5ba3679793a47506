package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

var cryptoClient *services.CoinMarketCapClient

func InitCrypto() {
	cryptoClient = services.NewCoinMarketCapClient()
}

// GetCryptoListings devuelve los listados de criptomonedas con su precio actual
func GetCryptoListings(c *gin.Context) {
	listings, err := cryptoClient.GetListings()
	if err != nil {
		if errors.Is(err, services.ErrAPIKeyMissing) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "La clave de la API no está configurada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los listados de criptomonedas"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// GetHistoricalPrices devuelve las últimas 30 observaciones diarias de una criptomoneda
func GetHistoricalPrices(c *gin.Context) {
	idParam := c.Param("id")
	if idParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el ID de la criptomoneda"})
		return
	}

	id, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El ID de la criptomoneda debe ser numérico"})
		return
	}

	prices, err := cryptoClient.GetHistoricalPrices(id)
	if err != nil {
		// Las fallas del proveedor pasan con su estado y detalle; el resto queda en 500
		var upstream *services.UpstreamError
		switch {
		case errors.Is(err, services.ErrAPIKeyMissing):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "La clave de la API no está configurada"})
		case errors.As(err, &upstream):
			c.JSON(upstream.StatusCode, gin.H{
				"error":   "Error al obtener los datos históricos del proveedor",
				"details": upstream.Details,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los datos históricos"})
		}
		return
	}

	c.JSON(http.StatusOK, prices)
}

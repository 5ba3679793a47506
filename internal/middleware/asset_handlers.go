package middleware

import (
	"errors"
	"net/http"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

var assetRepo *repository.AssetRepository

// SetAssetRepository establece el repositorio de activos que usan los handlers
func SetAssetRepository(repo *repository.AssetRepository) {
	assetRepo = repo
}

// CreateAsset registra una compra nueva de criptomoneda
func CreateAsset(c *gin.Context) {
	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Cachear el valor total al momento del alta si ya hay un precio vivo disponible
	if updater := GetPriceUpdater(); updater != nil {
		if price, exists := updater.Snapshot()[asset.CryptoID]; exists {
			currentValue := price * asset.Quantity
			asset.CurrentValue = &currentValue
		}
	}

	if err := assetRepo.CreateAsset(&asset); err != nil {
		// Las fallas de validación del repositorio son errores del cliente
		if errors.Is(err, repository.ErrInvalidAsset) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear el activo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Activo creado exitosamente",
		"asset":   asset,
	})
}

// GetAssets devuelve todos los activos registrados
func GetAssets(c *gin.Context) {
	assets, err := assetRepo.GetAssets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los activos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// DeleteAsset elimina un activo por su ID
func DeleteAsset(c *gin.Context) {
	id := c.Param("id")

	if err := assetRepo.DeleteAsset(id); err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activo no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar el activo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activo eliminado exitosamente"})
}

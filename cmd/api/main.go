package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/database"
	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/repository"
	routes "github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/server"
	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Instancia global del actualizador de precios
var priceUpdater *services.PriceUpdater

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	// Crear el router de Gin
	router := gin.Default()

	// Configurar CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.AllowCredentials = true
	config.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(config))

	// Inicializar base de datos
	if err := database.InitDB(); err != nil {
		log.Fatalf("Error al inicializar la base de datos: %v", err)
	}
	defer database.DB.Close()

	// Inicializar el cliente del proveedor de precios y el repositorio de activos
	middleware.InitCrypto()
	assetRepo := repository.NewAssetRepository(database.DB)
	middleware.SetAssetRepository(assetRepo)

	// Iniciar el servicio de actualización de precios (cada 60 segundos por defecto)
	priceUpdater = services.NewPriceUpdater(priceUpdateInterval(), assetRepo)
	priceUpdater.Start()
	defer priceUpdater.Stop()

	// Hacer disponible el actualizador de precios para los handlers
	middleware.SetPriceUpdater(priceUpdater)

	// Configurar las rutas
	routes.RegisterRoutes(router)

	// Iniciar el servidor
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}

// priceUpdateInterval lee el intervalo de refresco en segundos desde el entorno
func priceUpdateInterval() time.Duration {
	if value := os.Getenv("PRICE_UPDATE_INTERVAL"); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		log.Printf("PRICE_UPDATE_INTERVAL inválido (%q), se usa el valor por defecto", value)
	}
	return 60 * time.Second
}

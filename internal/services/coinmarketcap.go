package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
)

const cmcBaseURL = "https://pro-api.coinmarketcap.com/v1"

// ErrAPIKeyMissing indica que la clave de la API de CoinMarketCap no está configurada
var ErrAPIKeyMissing = errors.New("la variable COINMARKETCAP_API_KEY no está configurada")

// UpstreamError representa una respuesta no exitosa del proveedor de precios
type UpstreamError struct {
	StatusCode int
	Details    json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("el proveedor respondió con estado %d", e.StatusCode)
}

// CoinMarketCapClient consulta la API de CoinMarketCap para listados y datos históricos
type CoinMarketCapClient struct {
	baseURL    string
	httpClient *http.Client

	// Caché para reducir llamadas a la API (menos de 5 minutos)
	mu             sync.Mutex
	cachedListings []models.CryptoListing
	cachedAt       time.Time
}

func NewCoinMarketCapClient() *CoinMarketCapClient {
	return &CoinMarketCapClient{
		baseURL:    cmcBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetListings obtiene los primeros 100 listados con su precio actual en USD
func (c *CoinMarketCapClient) GetListings() ([]models.CryptoListing, error) {
	// Verificar si tenemos listados en caché y si son recientes
	c.mu.Lock()
	if c.cachedListings != nil && time.Since(c.cachedAt) < 5*time.Minute {
		listings := c.cachedListings
		c.mu.Unlock()
		return listings, nil
	}
	c.mu.Unlock()

	url := fmt.Sprintf("%s/cryptocurrency/listings/latest?limit=100", c.baseURL)
	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	result, err := models.UnmarshalCmcListings(body)
	if err != nil {
		log.Printf("Error decodificando JSON de listados: %v", err)
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}

	if result.Data == nil {
		return nil, fmt.Errorf("la respuesta del proveedor no tiene el formato esperado")
	}

	// Reducir cada entrada a la forma que consume el frontend
	listings := make([]models.CryptoListing, 0, len(result.Data))
	for _, currency := range result.Data {
		listings = append(listings, models.CryptoListing{
			ID:           currency.ID,
			Name:         currency.Name,
			Symbol:       currency.Symbol,
			CurrentPrice: currency.Quote["USD"].Price,
		})
	}

	// Guardar en caché
	c.mu.Lock()
	c.cachedListings = listings
	c.cachedAt = time.Now()
	c.mu.Unlock()

	return listings, nil
}

// GetHistoricalPrices obtiene las últimas 30 observaciones diarias de una criptomoneda
func (c *CoinMarketCapClient) GetHistoricalPrices(id int) ([]models.PricePoint, error) {
	url := fmt.Sprintf("%s/cryptocurrency/ohlcv/historical?id=%d&interval=daily&count=30", c.baseURL, id)
	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	result, err := models.UnmarshalCmcHistorical(body)
	if err != nil {
		log.Printf("Error decodificando JSON histórico para %d: %v", id, err)
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}

	data, exists := result.Data[fmt.Sprintf("%d", id)]
	if !exists {
		log.Printf("La respuesta del proveedor no contiene datos para el id %d", id)
		return nil, fmt.Errorf("la respuesta del proveedor no tiene el formato esperado")
	}

	prices := make([]models.PricePoint, 0, len(data.Quotes))
	for _, quote := range data.Quotes {
		timestamp, err := time.Parse(time.RFC3339, quote.Timestamp)
		if err != nil {
			log.Printf("Timestamp inválido %q para el id %d: %v", quote.Timestamp, id, err)
			continue
		}
		prices = append(prices, models.PricePoint{
			Date:  timestamp.UnixMilli(),
			Value: quote.Quote["USD"].Price,
		})
	}

	return prices, nil
}

// get realiza la petición HTTP con la clave de la API y devuelve el cuerpo de la respuesta
func (c *CoinMarketCapClient) get(url string) ([]byte, error) {
	apiKey := os.Getenv("COINMARKETCAP_API_KEY")
	if apiKey == "" {
		log.Println("Falta la clave de la API de CoinMarketCap")
		return nil, ErrAPIKeyMissing
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-CMC_PRO_API_KEY", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Error haciendo la petición HTTP a %s: %v", url, err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error leyendo el cuerpo de la respuesta: %v", err)
		return nil, fmt.Errorf("error leyendo respuesta: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("El proveedor respondió %d: %s", resp.StatusCode, string(body))
		// Si el cuerpo del error no es JSON (páginas HTML de proxies, texto plano)
		// se cita como cadena para que el detalle siga siendo JSON válido
		details := body
		if !json.Valid(details) {
			details = []byte(strconv.Quote(string(body)))
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Details: json.RawMessage(details)}
	}

	return body, nil
}

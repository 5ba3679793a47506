package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingsPayload = `{
	"data": [
		{"id": 1, "name": "Bitcoin", "symbol": "BTC", "quote": {"USD": {"price": 97000.5}}},
		{"id": 1027, "name": "Ethereum", "symbol": "ETH", "quote": {"USD": {"price": 3500.25}}}
	]
}`

const historicalPayload = `{
	"data": {
		"1": {
			"quotes": [
				{"timestamp": "2026-03-11T00:00:00Z", "quote": {"USD": {"price": 96000}}},
				{"timestamp": "2026-03-12T00:00:00Z", "quote": {"USD": {"price": 97000.5}}}
			]
		}
	}
}`

// newTestClient apunta el cliente a un servidor de prueba
func newTestClient(t *testing.T, handler http.HandlerFunc) (*CoinMarketCapClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewCoinMarketCapClient()
	client.baseURL = server.URL
	return client, server
}

func TestGetListingsMapsProviderShape(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "clave-de-prueba")

	var gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-CMC_PRO_API_KEY")
		w.Write([]byte(listingsPayload))
	})

	listings, err := client.GetListings()
	require.NoError(t, err)

	assert.Equal(t, "clave-de-prueba", gotKey)
	require.Len(t, listings, 2)
	assert.Equal(t, 1, listings[0].ID)
	assert.Equal(t, "Bitcoin", listings[0].Name)
	assert.Equal(t, "BTC", listings[0].Symbol)
	assert.Equal(t, 97000.5, listings[0].CurrentPrice)
	assert.Equal(t, 3500.25, listings[1].CurrentPrice)
}

func TestGetListingsUsesCache(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "clave-de-prueba")

	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(listingsPayload))
	})

	_, err := client.GetListings()
	require.NoError(t, err)
	_, err = client.GetListings()
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "la segunda llamada debe salir de la caché")
}

func TestGetListingsMissingAPIKey(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "")

	client := NewCoinMarketCapClient()
	_, err := client.GetListings()

	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestGetListingsUnexpectedShape(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "clave-de-prueba")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": {"error_code": 0}}`))
	})

	_, err := client.GetListings()
	assert.Error(t, err)
}

func TestGetHistoricalPrices(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "clave-de-prueba")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("id"))
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
		assert.Equal(t, "30", r.URL.Query().Get("count"))
		w.Write([]byte(historicalPayload))
	})

	prices, err := client.GetHistoricalPrices(1)
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.Equal(t, time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC).UnixMilli(), prices[0].Date)
	assert.Equal(t, 96000.0, prices[0].Value)
	assert.Equal(t, 97000.5, prices[1].Value)
}

func TestGetHistoricalPricesUpstreamError(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "clave-de-prueba")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status": {"error_message": "rate limit"}}`))
	})

	_, err := client.GetHistoricalPrices(1)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, string(upstream.Details), "rate limit")
}

func TestUpstreamErrorWithNonJSONBody(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "clave-de-prueba")

	// Los proxies intermedios suelen responder 502 con HTML en lugar de JSON
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>Bad Gateway</html>`))
	})

	_, err := client.GetHistoricalPrices(1)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)

	// El detalle debe quedar como JSON válido para que el cuerpo de error
	// del handler siempre se pueda serializar
	assert.True(t, json.Valid(upstream.Details))
	assert.Contains(t, string(upstream.Details), "Bad Gateway")

	_, err = json.Marshal(map[string]interface{}{
		"error":   "Error al obtener los datos históricos del proveedor",
		"details": upstream.Details,
	})
	assert.NoError(t, err)
}

func TestGetHistoricalPricesUnexpectedShape(t *testing.T) {
	t.Setenv("COINMARKETCAP_API_KEY", "clave-de-prueba")

	// Respuesta válida pero sin datos para el id pedido
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {}}`))
	})

	_, err := client.GetHistoricalPrices(1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAPIKeyMissing)
}

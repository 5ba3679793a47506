package models

import "encoding/json"

// CurrentPriceMap asocia el id de CoinMarketCap con el último precio unitario en USD.
// Se reemplaza completo en cada refresco, nunca se muta en el lugar.
type CurrentPriceMap map[int]float64

// CryptoListing es la forma reducida de un listado que exponemos al frontend
type CryptoListing struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"currentPrice"`
}

// PricePoint es una observación diaria del precio de una criptomoneda
type PricePoint struct {
	Date  int64   `json:"date"` // Timestamp en milisegundos
	Value float64 `json:"value"`
}

func UnmarshalCmcListings(data []byte) (CmcListingsResponse, error) {
	var r CmcListingsResponse
	err := json.Unmarshal(data, &r)
	return r, err
}

func UnmarshalCmcHistorical(data []byte) (CmcHistoricalResponse, error) {
	var r CmcHistoricalResponse
	err := json.Unmarshal(data, &r)
	return r, err
}

// CmcListingsResponse es la respuesta cruda de /cryptocurrency/listings/latest
type CmcListingsResponse struct {
	Data []CmcCurrency `json:"data"`
}

type CmcCurrency struct {
	ID     int                 `json:"id"`
	Name   string              `json:"name"`
	Symbol string              `json:"symbol"`
	Quote  map[string]CmcQuote `json:"quote"`
}

type CmcQuote struct {
	Price float64 `json:"price"`
}

// CmcHistoricalResponse es la respuesta cruda de /cryptocurrency/ohlcv/historical
type CmcHistoricalResponse struct {
	Data map[string]CmcHistoricalData `json:"data"`
}

type CmcHistoricalData struct {
	Quotes []CmcHistoricalQuote `json:"quotes"`
}

type CmcHistoricalQuote struct {
	Timestamp string              `json:"timestamp"`
	Quote     map[string]CmcQuote `json:"quote"`
}

package models

import "time"

// Asset representa una compra de criptomoneda registrada por el usuario
type Asset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" binding:"required"`
	DateBought   time.Time `json:"date_bought" binding:"required"`
	PricePaid    float64   `json:"price_paid" binding:"gte=0"`
	Quantity     float64   `json:"quantity" binding:"required,gt=0"`
	CryptoID     int       `json:"crypto_id" binding:"required"`
	CurrentValue *float64  `json:"current_value,omitempty"` // Valor total cacheado al momento del alta, puede quedar desactualizado
	CreatedAt    time.Time `json:"created_at"`
}

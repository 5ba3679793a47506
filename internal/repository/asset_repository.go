package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
	"github.com/google/uuid"
)

// ErrAssetNotFound se devuelve cuando el activo pedido no existe en la base de datos
var ErrAssetNotFound = errors.New("activo no encontrado")

// ErrInvalidAsset envuelve las fallas de validación de un alta, que el handler
// devuelve como error del cliente y no del servidor
var ErrInvalidAsset = errors.New("activo inválido")

type AssetRepository struct {
	db          *sql.DB
	mu          sync.Mutex
	subscribers map[int]chan []models.Asset
	nextSubID   int
}

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{
		db:          db,
		subscribers: make(map[int]chan []models.Asset),
	}
}

// CreateAsset valida y persiste un activo nuevo, asignándole un ID
func (r *AssetRepository) CreateAsset(asset *models.Asset) error {
	if asset.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", ErrInvalidAsset)
	}
	if asset.PricePaid < 0 {
		return fmt.Errorf("%w: el precio de compra no puede ser negativo", ErrInvalidAsset)
	}
	if asset.DateBought.After(time.Now()) {
		return fmt.Errorf("%w: la fecha de compra no puede ser futura", ErrInvalidAsset)
	}

	asset.ID = uuid.NewString()
	asset.CreatedAt = time.Now()

	query := `
		INSERT INTO assets (id, name, date_bought, price_paid, quantity, crypto_id, current_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		asset.ID,
		asset.Name,
		asset.DateBought,
		asset.PricePaid,
		asset.Quantity,
		asset.CryptoID,
		asset.CurrentValue,
		asset.CreatedAt,
	)
	if err != nil {
		return err
	}

	// Avisar a los suscriptores con la lista completa actualizada
	r.notifySubscribers()
	return nil
}

// GetAssets obtiene todos los activos en orden de alta
func (r *AssetRepository) GetAssets() ([]models.Asset, error) {
	query := `
		SELECT id, name, date_bought, price_paid, quantity, crypto_id, current_value, created_at
		FROM assets
		ORDER BY created_at, id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		var currentValue sql.NullFloat64
		err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.DateBought,
			&asset.PricePaid,
			&asset.Quantity,
			&asset.CryptoID,
			&currentValue,
			&asset.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if currentValue.Valid {
			asset.CurrentValue = &currentValue.Float64
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// DeleteAsset elimina un activo por su ID
func (r *AssetRepository) DeleteAsset(id string) error {
	result, err := r.db.Exec(`DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssetNotFound
	}

	r.notifySubscribers()
	return nil
}

// Subscribe registra un suscriptor que recibe la lista completa de activos
// después de cada alta o baja. Devuelve el canal y una función para cancelar la suscripción.
func (r *AssetRepository) Subscribe() (<-chan []models.Asset, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++

	ch := make(chan []models.Asset, 1)
	r.subscribers[id] = ch

	unsubscribe := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if sub, exists := r.subscribers[id]; exists {
			delete(r.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// notifySubscribers envía el snapshot completo de activos a cada suscriptor.
// Si un suscriptor tiene un snapshot pendiente sin leer, se descarta y queda el más reciente.
func (r *AssetRepository) notifySubscribers() {
	assets, err := r.GetAssets()
	if err != nil {
		log.Printf("Error al obtener activos para notificar suscriptores: %v", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.subscribers {
		select {
		case ch <- assets:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- assets
		}
	}
}

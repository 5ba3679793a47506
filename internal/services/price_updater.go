package services

import (
	"log"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
)

// AssetRepositoryInterface define las operaciones que necesitamos del repositorio de activos
type AssetRepositoryInterface interface {
	GetAssets() ([]models.Asset, error)
	Subscribe() (<-chan []models.Asset, func())
}

// PriceUpdater es un servicio que refresca periódicamente el snapshot de precios
// y mantiene actualizado el resumen del portafolio en caché
type PriceUpdater struct {
	interval  time.Duration
	client    *CoinMarketCapClient
	assetRepo AssetRepositoryInterface

	isRunning   bool
	stopChan    chan struct{}
	unsubscribe func()
	mutex       sync.Mutex

	lastUpdated   time.Time
	prices        models.CurrentPriceMap
	cachedSummary *models.PortfolioSummary
}

// NewPriceUpdater crea un nuevo servicio de actualización de precios
func NewPriceUpdater(interval time.Duration, assetRepo AssetRepositoryInterface) *PriceUpdater {
	return &PriceUpdater{
		interval:  interval,
		client:    NewCoinMarketCapClient(),
		assetRepo: assetRepo,
		prices:    make(models.CurrentPriceMap),
	}
}

// Start inicia el refresco periódico de precios y la escucha de cambios en los activos
func (p *PriceUpdater) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isRunning {
		return
	}

	p.isRunning = true
	p.stopChan = make(chan struct{})

	snapshots, unsubscribe := p.assetRepo.Subscribe()
	p.unsubscribe = unsubscribe

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		// Refrescar inmediatamente al iniciar
		p.refreshPrices()

		for {
			select {
			case <-ticker.C:
				p.refreshPrices()
			case assets, ok := <-snapshots:
				if !ok {
					return
				}
				// Cada alta o baja recalcula el resumen desde cero con el snapshot completo
				p.recomputeSummary(assets)
			case <-p.stopChan:
				return
			}
		}
	}()

	log.Printf("Servicio de actualización de precios iniciado con intervalo de %v", p.interval)
}

// Stop detiene el servicio de actualización de precios
func (p *PriceUpdater) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.isRunning {
		return
	}

	p.isRunning = false
	close(p.stopChan)
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	log.Printf("Servicio de actualización de precios detenido")
}

// refreshPrices construye un snapshot de precios nuevo a partir de los listados
// y lo reemplaza completo. Si dos refrescos se superponen gana el último en escribir.
func (p *PriceUpdater) refreshPrices() {
	listings, err := p.client.GetListings()
	if err != nil {
		log.Printf("Error al refrescar precios: %v", err)
		return
	}

	prices := make(models.CurrentPriceMap, len(listings))
	for _, listing := range listings {
		prices[listing.ID] = listing.CurrentPrice
	}

	p.mutex.Lock()
	p.prices = prices
	p.lastUpdated = time.Now()
	p.mutex.Unlock()

	assets, err := p.assetRepo.GetAssets()
	if err != nil {
		log.Printf("Error al obtener activos para recalcular el resumen: %v", err)
		return
	}
	p.recomputeSummary(assets)

	log.Printf("Snapshot de precios actualizado con %d criptomonedas", len(prices))
}

// recomputeSummary recalcula el resumen del portafolio con el último snapshot de precios
func (p *PriceUpdater) recomputeSummary(assets []models.Asset) {
	summary := BuildPortfolioSummary(assets, p.Snapshot(), p.LastUpdated())

	p.mutex.Lock()
	p.cachedSummary = summary
	p.mutex.Unlock()
}

// Snapshot devuelve una copia del snapshot de precios actual
func (p *PriceUpdater) Snapshot() models.CurrentPriceMap {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	prices := make(models.CurrentPriceMap, len(p.prices))
	for id, price := range p.prices {
		prices[id] = price
	}
	return prices
}

// CachedSummary devuelve el resumen del portafolio en caché, si existe
func (p *PriceUpdater) CachedSummary() (*models.PortfolioSummary, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.cachedSummary, p.cachedSummary != nil
}

// LastUpdated devuelve la última vez que se refrescó el snapshot de precios
func (p *PriceUpdater) LastUpdated() time.Time {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.lastUpdated
}

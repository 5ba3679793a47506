package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Crypto_Portfolio_Api.git/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Cada conexión del pool tendría su propia base en memoria
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
	CREATE TABLE assets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date_bought DATETIME NOT NULL,
		price_paid REAL NOT NULL,
		quantity REAL NOT NULL,
		crypto_id INTEGER NOT NULL,
		current_value REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	require.NoError(t, err)

	return db
}

func testAsset(name string) *models.Asset {
	return &models.Asset{
		Name:       name,
		DateBought: time.Now().AddDate(0, 0, -3),
		PricePaid:  100,
		Quantity:   2,
		CryptoID:   1,
	}
}

func TestCreateAssetAssignsID(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	asset := testAsset("Bitcoin")
	require.NoError(t, repo.CreateAsset(asset))

	assert.NotEmpty(t, asset.ID)
	assert.False(t, asset.CreatedAt.IsZero())

	assets, err := repo.GetAssets()
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, asset.ID, assets[0].ID)
	assert.Equal(t, "Bitcoin", assets[0].Name)
	assert.Nil(t, assets[0].CurrentValue)
}

func TestCreateAssetValidations(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	invalidQuantity := testAsset("Bitcoin")
	invalidQuantity.Quantity = 0
	assert.ErrorIs(t, repo.CreateAsset(invalidQuantity), ErrInvalidAsset)

	negativePrice := testAsset("Bitcoin")
	negativePrice.PricePaid = -1
	assert.ErrorIs(t, repo.CreateAsset(negativePrice), ErrInvalidAsset)

	futureDate := testAsset("Bitcoin")
	futureDate.DateBought = time.Now().AddDate(0, 0, 1)
	assert.ErrorIs(t, repo.CreateAsset(futureDate), ErrInvalidAsset)

	assets, err := repo.GetAssets()
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestCreateAssetPersistsCachedValue(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	asset := testAsset("Bitcoin")
	currentValue := 300.0
	asset.CurrentValue = &currentValue
	require.NoError(t, repo.CreateAsset(asset))

	assets, err := repo.GetAssets()
	require.NoError(t, err)
	require.Len(t, assets, 1)
	require.NotNil(t, assets[0].CurrentValue)
	assert.Equal(t, 300.0, *assets[0].CurrentValue)
}

func TestGetAssetsPreservesInsertOrder(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	require.NoError(t, repo.CreateAsset(testAsset("Bitcoin")))
	require.NoError(t, repo.CreateAsset(testAsset("Ethereum")))
	require.NoError(t, repo.CreateAsset(testAsset("Solana")))

	assets, err := repo.GetAssets()
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "Bitcoin", assets[0].Name)
	assert.Equal(t, "Ethereum", assets[1].Name)
	assert.Equal(t, "Solana", assets[2].Name)
}

func TestDeleteAsset(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	asset := testAsset("Bitcoin")
	require.NoError(t, repo.CreateAsset(asset))

	require.NoError(t, repo.DeleteAsset(asset.ID))

	assets, err := repo.GetAssets()
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestDeleteAssetNotFound(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	err := repo.DeleteAsset("no-existe")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	snapshots, unsubscribe := repo.Subscribe()
	defer unsubscribe()

	asset := testAsset("Bitcoin")
	require.NoError(t, repo.CreateAsset(asset))

	select {
	case snapshot := <-snapshots:
		require.Len(t, snapshot, 1)
		assert.Equal(t, asset.ID, snapshot[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no llegó el snapshot después del alta")
	}

	require.NoError(t, repo.DeleteAsset(asset.ID))

	select {
	case snapshot := <-snapshots:
		assert.Empty(t, snapshot)
	case <-time.After(time.Second):
		t.Fatal("no llegó el snapshot después de la baja")
	}
}

func TestSubscribeKeepsLatestSnapshot(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	snapshots, unsubscribe := repo.Subscribe()
	defer unsubscribe()

	// Dos altas sin leer: el snapshot pendiente se descarta y queda el último
	require.NoError(t, repo.CreateAsset(testAsset("Bitcoin")))
	require.NoError(t, repo.CreateAsset(testAsset("Ethereum")))

	select {
	case snapshot := <-snapshots:
		assert.Len(t, snapshot, 2)
	case <-time.After(time.Second):
		t.Fatal("no llegó ningún snapshot")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	repo := NewAssetRepository(setupTestDB(t))

	snapshots, unsubscribe := repo.Subscribe()
	unsubscribe()
	unsubscribe() // cancelar dos veces no debe entrar en pánico

	_, open := <-snapshots
	assert.False(t, open)

	// Las altas posteriores no deben intentar escribir en el canal cerrado
	require.NoError(t, repo.CreateAsset(testAsset("Bitcoin")))
}

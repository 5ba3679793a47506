package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	// Crear el directorio database si no existe
	if err := os.MkdirAll("database", 0755); err != nil {
		return err
	}

	var err error
	DB, err = sql.Open("sqlite3", filepath.Join("database", "portfolio.db"))
	if err != nil {
		return err
	}

	// Crear tabla de activos si no existe
	createAssetsTableSQL := `
	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date_bought DATETIME NOT NULL,
		price_paid REAL NOT NULL,
		quantity REAL NOT NULL,
		crypto_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err = DB.Exec(createAssetsTableSQL)
	if err != nil {
		return err
	}

	// Crear índice para ordenar por fecha de alta
	createAssetsIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_assets_created_at
	ON assets(created_at);`

	_, err = DB.Exec(createAssetsIndexSQL)
	if err != nil {
		return err
	}

	// Ejecutar migraciones para actualizar el esquema
	err = RunMigrations()
	return err
}

package database

import (
	"log"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema de la base de datos
func RunMigrations() error {
	log.Println("Ejecutando migraciones de la base de datos...")

	// Migración para añadir el campo current_value a la tabla assets
	addCurrentValueColumnSQL := `
	ALTER TABLE assets ADD COLUMN current_value REAL;
	`

	_, err := DB.Exec(addCurrentValueColumnSQL)
	if err != nil {
		// No retornamos error porque SQLite da error si la columna ya existe
		// y queremos que la migración continúe
		log.Printf("Columna current_value ya existente, se omite la migración: %v", err)
	} else {
		log.Println("Columna current_value añadida correctamente")
	}

	return nil
}

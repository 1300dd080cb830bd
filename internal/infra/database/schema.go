package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is safe to apply repeatedly. The ALTER upgrades tables created
// before the estado column existed.
const Schema = `
CREATE TABLE IF NOT EXISTS contactos (
    id        SERIAL PRIMARY KEY,
    nombre    VARCHAR(100)  NOT NULL,
    telefono  VARCHAR(20)   NOT NULL,
    correo    VARCHAR(255)  NOT NULL,
    mensaje   VARCHAR(1000) NOT NULL,
    terminos  BOOLEAN       NOT NULL
);

ALTER TABLE contactos ADD COLUMN IF NOT EXISTS estado VARCHAR(20) NOT NULL DEFAULT 'nuevo';
`

func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

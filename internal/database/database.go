package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialect identifies the SQL backend selected for a connection.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Connect opens the backing store. A postgres:// DSN selects PostgreSQL;
// anything else is treated as a SQLite file path (empty means a local file),
// so deployments and local development share one code path.
func Connect(dsn string) (*gorm.DB, Dialect, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, DialectPostgres, nil
	}

	path := dsn
	if path == "" {
		path = "muni.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return db, DialectSQLite, nil
}

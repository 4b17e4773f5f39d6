package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open connects to the configured relational store and ensures the schema
// exists. The returned handle is passed explicitly to every repository; there
// is no package-level connection.
func Open(databaseType, connectionString string) (*sql.DB, error) {
	switch databaseType {
	case "sqlite":
		db, err := sql.Open("sqlite", connectionString)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		// modernc sqlite serializes writes itself; a single connection avoids
		// table-lock errors under concurrent requests.
		db.SetMaxOpenConns(1)
		if err := EnsureSchema(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create database schema: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", databaseType)
	}
}

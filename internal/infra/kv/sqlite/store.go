// Package sqlite provides the kv medium on an embedded sqlite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"storefront/internal/infra/kv/sqlkv"
	"storefront/internal/kv/core"
)

// Dialect is the sqlite statement set.
var Dialect = sqlkv.Dialect{
	Driver: core.DriverSQLite,
	DDL: `CREATE TABLE IF NOT EXISTS storefront_kv (
		kv_key TEXT PRIMARY KEY,
		kv_value BLOB NOT NULL
	)`,
	Select: `SELECT kv_value FROM storefront_kv WHERE kv_key = ?`,
	Upsert: `INSERT INTO storefront_kv(kv_key, kv_value) VALUES(?, ?) ON CONFLICT(kv_key) DO UPDATE SET kv_value = excluded.kv_value`,
	Delete: `DELETE FROM storefront_kv WHERE kv_key = ?`,
}

// New opens the sqlite file at path (default ./storefront.db).
func New(ctx context.Context, path string) (*sqlkv.Store, error) {
	if path == "" {
		path = "storefront.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)
	return sqlkv.Open(ctx, db, Dialect)
}

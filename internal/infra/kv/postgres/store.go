// Package postgres provides the kv medium on a PostgreSQL table via pgx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"storefront/internal/infra/kv/sqlkv"
	"storefront/internal/kv/core"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/storefront?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Dialect is the postgres statement set.
var Dialect = sqlkv.Dialect{
	Driver: core.DriverPostgres,
	DDL: `CREATE TABLE IF NOT EXISTS storefront_kv (
		kv_key TEXT PRIMARY KEY,
		kv_value BYTEA NOT NULL
	)`,
	Select: `SELECT kv_value FROM storefront_kv WHERE kv_key = $1`,
	Upsert: `INSERT INTO storefront_kv(kv_key, kv_value) VALUES($1, $2) ON CONFLICT(kv_key) DO UPDATE SET kv_value = EXCLUDED.kv_value`,
	Delete: `DELETE FROM storefront_kv WHERE kv_key = $1`,
}

// New opens a Postgres medium using dsn (falls back to defaultDSN).
func New(ctx context.Context, dsn string) (*sqlkv.Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return sqlkv.Open(ctx, db, Dialect)
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}

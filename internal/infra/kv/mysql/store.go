// Package mysql provides the kv medium on a MySQL table.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // register the mysql driver

	"storefront/internal/infra/kv/sqlkv"
	"storefront/internal/kv/core"
)

// Dialect is the mysql statement set. kv_key is bounded to fit the index.
var Dialect = sqlkv.Dialect{
	Driver: core.DriverMySQL,
	DDL: `CREATE TABLE IF NOT EXISTS storefront_kv (
		kv_key VARCHAR(191) PRIMARY KEY,
		kv_value LONGBLOB NOT NULL
	)`,
	Select: "SELECT kv_value FROM storefront_kv WHERE kv_key = ?",
	Upsert: "INSERT INTO storefront_kv(kv_key, kv_value) VALUES(?, ?) ON DUPLICATE KEY UPDATE kv_value = VALUES(kv_value)",
	Delete: "DELETE FROM storefront_kv WHERE kv_key = ?",
}

// New opens a MySQL medium, e.g. dsn "user:pass@tcp(127.0.0.1:3306)/storefront".
func New(ctx context.Context, dsn string) (*sqlkv.Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql dsn required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return sqlkv.Open(ctx, db, Dialect)
}

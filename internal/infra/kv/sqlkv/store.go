// Package sqlkv implements the kv medium on a single database/sql table. The
// sqlite, postgres and mysql packages supply the driver and dialect.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/kv/core"
)

// Dialect holds the statements for one SQL engine. Select, Upsert and Delete
// take the key as their first argument; Upsert takes the value second.
type Dialect struct {
	Driver core.Driver
	DDL    string
	Select string
	Upsert string
	Delete string
}

// Store implements core.Medium over a database/sql handle.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open ensures the table exists and returns the store. The store owns db.
func Open(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Driver, err)
	}
	if _, err := db.ExecContext(ctx, dialect.DDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &Store{db: db, dialect: dialect}, nil
}

func (s *Store) Driver() core.Driver { return s.dialect.Driver }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.Select, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

// Set upserts inside a transaction so a failed write leaves the old value.
func (s *Store) Set(ctx context.Context, key string, value []byte) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, s.dialect.Upsert, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Delete, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for integration tests.
func (s *Store) DB() *sql.DB { return s.db }

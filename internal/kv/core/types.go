// Package core defines the key-value medium abstraction implemented by the
// storage backends under internal/infra/kv.
package core

import (
	"context"
	"errors"
)

// Driver identifies a concrete medium implementation.
type Driver string

const (
	// DriverMemory keeps values in process memory (tests).
	DriverMemory Driver = "memory"
	// DriverFilesystem stores one file per key under a root directory.
	DriverFilesystem Driver = "fs"
	// DriverBolt stores values in an embedded bbolt database.
	DriverBolt Driver = "bolt"
	// DriverSQLite stores values in an embedded sqlite file.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores values in a PostgreSQL table.
	DriverPostgres Driver = "postgres"
	// DriverMySQL stores values in a MySQL table.
	DriverMySQL Driver = "mysql"
	// DriverRedis stores values in Redis.
	DriverRedis Driver = "redis"
	// DriverS3 stores values as objects in an S3 compatible bucket.
	DriverS3 Driver = "s3"
)

// Medium is a durable key-value store holding opaque values. Set replaces
// the whole value atomically.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Driver() Driver
	Close() error
}

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("kv: key not found")

package kv

import (
	"context"
	"fmt"

	"storefront/internal/infra/kv/bolt"
	"storefront/internal/infra/kv/fs"
	"storefront/internal/infra/kv/memory"
	"storefront/internal/infra/kv/mysql"
	"storefront/internal/infra/kv/postgres"
	"storefront/internal/infra/kv/redis"
	"storefront/internal/infra/kv/s3"
	"storefront/internal/infra/kv/sqlite"
)

// Config selects and parameterizes a backend.
type Config struct {
	Driver      Driver
	FSRoot      string
	BoltPath    string
	SQLitePath  string
	PostgresDSN string
	MySQLDSN    string
	Redis       redis.Config
	S3          s3.Config
}

// Open constructs the medium named by cfg.Driver. An empty driver selects bolt.
func Open(ctx context.Context, cfg Config) (Medium, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverBolt
	}
	switch driver {
	case DriverMemory:
		return memory.New(), nil
	case DriverFilesystem:
		return fs.New(cfg.FSRoot)
	case DriverBolt:
		return bolt.New(cfg.BoltPath)
	case DriverSQLite:
		return sqlite.New(ctx, cfg.SQLitePath)
	case DriverPostgres:
		return postgres.New(ctx, cfg.PostgresDSN)
	case DriverMySQL:
		return mysql.New(ctx, cfg.MySQLDSN)
	case DriverRedis:
		return redis.New(ctx, cfg.Redis)
	case DriverS3:
		return s3.New(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

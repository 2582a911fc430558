// Package config loads storefront settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"storefront/internal/infra/kv/redis"
	"storefront/internal/infra/kv/s3"
	"storefront/internal/kv"
	"storefront/internal/logging"
)

// Prefix is prepended to every variable name, e.g. STOREFRONT_DRIVER.
const Prefix = "STOREFRONT"

// Config is the full runtime configuration.
type Config struct {
	Driver      string `envconfig:"DRIVER" default:"bolt"`
	SnapshotKey string `envconfig:"SNAPSHOT_KEY" default:"storefront-data"`

	FSRoot      string `envconfig:"FS_ROOT" default:"./data"`
	BoltPath    string `envconfig:"BOLT_PATH" default:"./storefront.db"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./storefront.sqlite"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`
	MySQLDSN    string `envconfig:"MYSQL_DSN"`

	Redis RedisConfig `envconfig:"REDIS"`
	S3    S3Config    `envconfig:"S3"`

	LogMode  string `envconfig:"LOG_MODE" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`

	StrictAdminLogin bool   `envconfig:"STRICT_ADMIN_LOGIN" default:"false"`
	NodeID           int64  `envconfig:"NODE_ID" default:"1"`
	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"storefront"`

	TraceFile   string `envconfig:"TRACE_FILE"`
	TraceRetain int    `envconfig:"TRACE_RETAIN" default:"0"`
}

// RedisConfig is read from STOREFRONT_REDIS_*.
type RedisConfig struct {
	Addr      string `envconfig:"ADDR" default:"localhost:6379"`
	Password  string `envconfig:"PASSWORD"`
	DB        int    `envconfig:"DB" default:"0"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"storefront:"`
}

// S3Config is read from STOREFRONT_S3_*.
type S3Config struct {
	Region          string `envconfig:"REGION" default:"us-east-1"`
	Bucket          string `envconfig:"BUCKET"`
	Prefix          string `envconfig:"PREFIX"`
	Endpoint        string `envconfig:"ENDPOINT"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	PathStyle       bool   `envconfig:"PATH_STYLE" default:"false"`
}

// Load reads envFiles (missing files are skipped) without overriding variables
// already set, then processes the environment.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	switch kv.Driver(c.Driver) {
	case kv.DriverMemory, kv.DriverFilesystem, kv.DriverBolt, kv.DriverSQLite, kv.DriverRedis:
	case kv.DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%s_POSTGRES_DSN is required for the postgres driver", Prefix)
		}
	case kv.DriverMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("%s_MYSQL_DSN is required for the mysql driver", Prefix)
		}
	case kv.DriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("%s_S3_BUCKET is required for the s3 driver", Prefix)
		}
	default:
		return fmt.Errorf("unknown %s_DRIVER %q", Prefix, c.Driver)
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("%s_NODE_ID must be within 0-1023, got %d", Prefix, c.NodeID)
	}
	if c.TraceRetain < 0 {
		return fmt.Errorf("%s_TRACE_RETAIN must not be negative, got %d", Prefix, c.TraceRetain)
	}
	return nil
}

// Storage maps the configuration onto the kv factory parameters.
func (c Config) Storage() kv.Config {
	return kv.Config{
		Driver:      kv.Driver(c.Driver),
		FSRoot:      c.FSRoot,
		BoltPath:    c.BoltPath,
		SQLitePath:  c.SQLitePath,
		PostgresDSN: c.PostgresDSN,
		MySQLDSN:    c.MySQLDSN,
		Redis: redis.Config{
			Addr:      c.Redis.Addr,
			Password:  c.Redis.Password,
			DB:        c.Redis.DB,
			KeyPrefix: c.Redis.KeyPrefix,
		},
		S3: s3.Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			Prefix:          c.S3.Prefix,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			PathStyle:       c.S3.PathStyle,
		},
	}
}

// Logging maps the configuration onto logger options.
func (c Config) Logging() logging.Options {
	return logging.Options{Mode: c.LogMode, Level: c.LogLevel, Filename: c.LogFile}
}

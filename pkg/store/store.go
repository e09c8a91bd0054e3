package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Store is the persisted configuration contract.
type Store interface {
	// Read returns the value for key. A missing key yields found=false and a nil error.
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Close() error
}

// Driver names.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverBadger   = "badger"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverS3       = "s3"
)

// EnabledKey is the key holding the persisted enabled flag of a feature.
func EnabledKey(feature string) string {
	return "features/" + feature + "/enabled"
}

// SettingKey is the key holding one serialized setting of a feature.
func SettingKey(feature, setting string) string {
	return "features/" + feature + "/settings/" + setting
}

// Open connects the driver named in cfg.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile, "":
		return OpenFileStore(cfg.FilePath)
	case DriverBadger:
		return OpenBadgerStore(cfg.BadgerDir)
	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.KeyPrefix), nil
	case DriverPostgres:
		return OpenPostgresStore(ctx, cfg.Postgres, log)
	case DriverMongo:
		return OpenMongoStore(ctx, cfg.Mongo)
	case DriverS3:
		return NewS3Store(ctx, cfg.S3, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

package store

import "errors"

var (
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrInvalidConfig = errors.New("invalid store configuration")
	ErrReadFailed    = errors.New("store read failed")
	ErrWriteFailed   = errors.New("store write failed")
	ErrClosed        = errors.New("store is closed")

	ErrRedisNotReady       = errors.New("redis did not become ready")
	ErrFailedToParseURL    = errors.New("failed to parse connection url")
	ErrPostgresNotReady    = errors.New("postgres did not become ready")
	ErrMigrationFailed     = errors.New("failed to apply migrations")
	ErrMongoNotReady       = errors.New("mongo did not become ready")
	ErrFailedToLoadAWSConf = errors.New("failed to load aws configuration")
)

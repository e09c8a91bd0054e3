package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/modkit/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PgxConn is the subset of *pgxpool.Pool the store uses.
type PgxConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectSetting = `SELECT value FROM modkit_settings WHERE key = $1`
	upsertSetting = `INSERT INTO modkit_settings (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// PostgresStore keeps values in the modkit_settings table.
type PostgresStore struct {
	conn  PgxConn
	close func()
}

// NewPostgresStore wraps an existing connection. The schema must already exist.
func NewPostgresStore(conn PgxConn) *PostgresStore {
	return &PostgresStore{conn: conn, close: func() {}}
}

// OpenPostgresStore connects, applies the embedded migrations and returns the store.
func OpenPostgresStore(ctx context.Context, cfg PostgresConfig, log *slog.Logger) (*PostgresStore, error) {
	pool, err := ConnectPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := MigratePostgres(ctx, pool, cfg.MigrationsTable, logger.OrNop(log)); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{conn: pool, close: pool.Close}, nil
}

func (s *PostgresStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.conn.QueryRow(ctx, selectSetting, key).Scan(&value)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, errors.Join(ErrReadFailed, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Write(ctx context.Context, key string, value []byte) error {
	if _, err := s.conn.Exec(ctx, upsertSetting, key, value); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.close()
	return nil
}

// ConnectPostgres opens a pool, backing off linearly between attempts.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	if cfg.ConnectionString == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("postgres connection string is empty"))
	}
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns

	for i := range max(cfg.RetryAttempts, 1) {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
	}

	return nil, ErrPostgresNotReady
}

// MigratePostgres applies the embedded schema migrations with goose.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", logger.Error(err))
		}
	}()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})
	if table != "" {
		goose.SetTableName(table)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...), logger.Component("migrations"))
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...), logger.Component("migrations"))
}

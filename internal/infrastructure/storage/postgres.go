package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-engine/internal/config"
	"rental-engine/internal/pkg/apperrors"
)

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
    key        TEXT PRIMARY KEY,
    data       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertSnapshot = `
INSERT INTO snapshots (key, data, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

const selectSnapshot = `SELECT data FROM snapshots WHERE key = $1`

// DB is the subset of pgxpool.Pool the snapshot store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db     DB
	logger *slog.Logger
}

var _ SnapshotStore = (*PostgresStore)(nil)

func NewPostgresStore(db DB, logger *slog.Logger) *PostgresStore {
	if db == nil {
		panic("DB cannot be nil for PostgresStore")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PostgresStore{
		db:     db,
		logger: logger.With("component", "PostgresStore"),
	}
}

// EnsureSchema creates the snapshots table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createSnapshotsTable); err != nil {
		s.logger.ErrorContext(ctx, "Failed to ensure snapshots table", slog.Any("error", err))
		return apperrors.WrapStorageError(err, "failed to ensure snapshots table")
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, selectSnapshot, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.DebugContext(ctx, "No snapshot row yet", "key", key)
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Failed to load snapshot", "key", key, slog.Any("error", err))
		return nil, apperrors.WrapStorageError(err, fmt.Sprintf("failed to load snapshot %s", key))
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.Exec(ctx, upsertSnapshot, key, data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save snapshot", "key", key, slog.Any("error", err))
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to save snapshot %s", key))
	}
	s.logger.DebugContext(ctx, "Snapshot written", "key", key, "bytes", len(data))
	return nil
}

// NewConnectionPool dials PostgreSQL using the configured URL and verifies the
// connection with a ping before handing the pool back.
func NewConnectionPool(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: storage URL is empty in configuration", apperrors.ErrInvalidArgument)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse storage config from URL: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info("Connecting to PostgreSQL snapshot store...")
	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		logger.Error("Failed to ping database", slog.Any("error", err))
		return nil, fmt.Errorf("failed to ping database on connect: %w", err)
	}

	logger.Info("Successfully connected to PostgreSQL snapshot store.", "host", poolConfig.ConnConfig.Host, "db", poolConfig.ConnConfig.Database)
	return dbpool, nil
}

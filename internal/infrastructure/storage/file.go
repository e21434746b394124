package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"rental-engine/internal/pkg/apperrors"
)

// FileStore keeps one JSON document per key under a directory. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// truncated snapshot behind.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

var _ SnapshotStore = (*FileStore)(nil)

func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: storage path cannot be empty", apperrors.ErrInvalidArgument)
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.WrapStorageError(err, fmt.Sprintf("failed to create storage directory %s", dir))
	}
	return &FileStore{
		dir:    dir,
		logger: logger.With("component", "FileStore", "dir", dir),
	}, nil
}

func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No snapshot on disk yet", "key", key)
			return nil, nil
		}
		s.logger.Error("Failed to read snapshot", "key", key, slog.Any("error", err))
		return nil, apperrors.WrapStorageError(err, fmt.Sprintf("failed to read snapshot %s", key))
	}
	return data, nil
}

func (s *FileStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to create temp file for snapshot %s", key))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to write snapshot %s", key))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to close snapshot %s", key))
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to replace snapshot %s", key))
	}

	s.logger.Debug("Snapshot written", "key", key, "bytes", len(data))
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

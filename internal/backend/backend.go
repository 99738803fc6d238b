// Package backend opens the storage backend selected by configuration.
package backend

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"agenda/internal/backend/filestore"
	"agenda/internal/backend/sqlitestore"
	"agenda/internal/config"
	"agenda/internal/storage"
)

// Open returns the storage backend named by cfg.Backend.
// The caller closes it if it implements io.Closer.
func Open(cfg *config.Config, log *zap.Logger) (storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.New(cfg.DataPath(), log)
	case config.BackendSQLite:
		return sqlitestore.Open(filepath.Join(cfg.DataPath(), sqlitestore.DefaultFile), log)
	case config.BackendMemory:
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

package store

import (
	"fmt"

	"smartbudget/internal/config"
	"smartbudget/internal/log"
	"smartbudget/internal/store/memory"
	"smartbudget/internal/store/sqlite"
)

// Open builds the entity store backend selected by the configuration.
func Open(cfg *config.Config, logger *log.Logger) (Store, error) {
	logger = logger.WithComponent(log.ComponentStore)

	switch cfg.DataBackend {
	case config.BackendMemory:
		opts := []memory.Option{}
		if cfg.StoreLatency > 0 {
			opts = append(opts, memory.WithLatency(cfg.StoreLatency))
		}
		logger.Info("Initialized memory store",
			log.FieldBackend, cfg.DataBackend,
			"latency", cfg.StoreLatency.String())
		return memory.New(opts...), nil

	case config.BackendSQLite:
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite store",
			log.FieldBackend, cfg.DataBackend,
			"db_path", cfg.SQLiteDBPath)
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}

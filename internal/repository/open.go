package repository

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/config"
	"github.com/sristy17/sgay-v1/pkg/database"
)

// Open builds the repositories for cfg.Store.Driver. For postgres it connects,
// runs pending migrations and returns a closer for the pool.
func Open(cfg *config.Config, logger *zap.Logger) (*Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using the in-memory store, data is lost on restart")
		return NewMemoryRepository(), func() {}, nil

	case config.StoreDriverPostgres:
		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get sql.DB: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return NewRepository(db), func() { sqlDB.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Open abre el backend indicado por STORE_DRIVER y aplica las migraciones si corresponde.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return postgres.NewStore(pool), nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.Store.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		log.Info().Str("path", store.Path()).Msg("usando SQLite")
		return store, nil

	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("driver no soportado: %s", cfg.Store.Driver)
}

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}
	store, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &memory.Store{}, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpen_SQLiteConMigraciones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: path, AutoMigrate: true}}
	store, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &sqlite.Store{}, store)
	list, err := store.Repos().Materials.List(context.Background())
	require.NoError(t, err, "las tablas deben existir después de migrar")
	assert.Empty(t, list)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "mongo"}}
	_, err := Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

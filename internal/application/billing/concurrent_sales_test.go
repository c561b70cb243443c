package billing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/billing"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// requireNoOversell lanza 40 ventas concurrentes de 10 unidades contra un stock de 100:
// exactamente 10 deben entrar y el resto fallar con ErrInsufficientStock.
func requireNoOversell(t *testing.T, store ports.Store) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repos()
	recorder := audit.NewRecorder()
	stock := inventory.NewStockLedgerUseCase(store, repos.Materials, repos.Rolls, recorder)
	sales := billing.NewSalesLedgerUseCase(store, repos.Sales, recorder)

	// Proveedor único para poder repetir el test sobre una base persistente.
	materialID, err := stock.RegisterMaterial(ctx, dto.RegisterMaterialRequest{
		Name: "Ribana", Type: entity.MaterialTypeEnsiz, Supplier: "conc-" + uuid.NewString(),
	})
	require.NoError(t, err)
	_, err = stock.AdjustStock(ctx, materialID, dto.AdjustStockRequest{Delta: d("100")})
	require.NoError(t, err)

	const workers = 40
	var wg sync.WaitGroup
	var successes, rejected atomic.Int32
	unexpected := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sales.RecordSale(ctx, dto.RecordSaleRequest{
				MaterialID: materialID, QuantitySold: d("10"), Price: d("1"),
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				unexpected <- err
			}
		}()
	}
	wg.Wait()
	close(unexpected)
	for err := range unexpected {
		t.Errorf("error inesperado: %v", err)
	}

	assert.Equal(t, int32(10), successes.Load())
	assert.Equal(t, int32(workers-10), rejected.Load())

	m, err := stock.Get(ctx, materialID)
	require.NoError(t, err)
	assert.True(t, m.TotalQuantity.IsZero(), "stock final %s", m.TotalQuantity)

	list, err := sales.List(ctx)
	require.NoError(t, err)
	n := 0
	for _, s := range list {
		if s.MaterialID == materialID {
			n++
		}
	}
	assert.Equal(t, 10, n, "una venta persistida por cada éxito")
}

func TestRecordSale_Concurrente_Memory(t *testing.T) {
	requireNoOversell(t, memory.New())
}

func TestRecordSale_Concurrente_SQLite(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Migrate(ctx))

	requireNoOversell(t, store)
}

// Ejercita el SELECT ... FOR UPDATE real. Requiere DATABASE_URL apuntando a una base de pruebas.
func TestRecordSale_Concurrente_Postgres(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 8})
	require.NoError(t, err)
	store := postgres.NewStore(pool)
	defer store.Close()
	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))

	requireNoOversell(t, store)
}

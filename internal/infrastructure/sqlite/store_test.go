package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/billing"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestMigrate_Idempotente(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Ping(context.Background()))
}

func TestMaterials_RoundTripYDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Repos().Materials
	colour := "ekru"
	now := time.Now().UTC().Truncate(time.Second)
	m := &entity.Material{
		ID: "m1", Name: "Süprem", Type: entity.MaterialTypeEnli, Colour: &colour, Supplier: "Acme",
		TotalQuantity: d("12.345"), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.TotalQuantity.Equal(d("12.345")))
	require.NotNil(t, got.Colour)
	assert.Equal(t, "ekru", *got.Colour)
	assert.True(t, got.CreatedAt.Equal(now))

	dup := *m
	dup.ID = "m2"
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrDuplicateMaterial)

	missing, err := repo.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.ErrorIs(t, repo.UpdateTotalQuantity(ctx, "no-existe", d("1")), domain.ErrMaterialNotFound)
}

func TestRun_RollbackEnError(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	boom := errors.New("boom")

	err := store.Run(ctx, func(r ports.Repos) error {
		now := time.Now().UTC()
		require.NoError(t, r.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ayşe", CreatedAt: now, UpdatedAt: now}))
		require.NoError(t, r.Logs.Append(ctx, &entity.ActivityLog{ID: "l1", Changes: []byte(`{}`), CreatedAt: now}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	c, err := store.Repos().Customers.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, c)
	logs, err := store.Repos().Logs.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestLedger_CicloCompletoSobreSQLite(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	repos := store.Repos()
	recorder := audit.NewRecorder()
	stock := inventory.NewStockLedgerUseCase(store, repos.Materials, repos.Rolls, recorder)
	sales := billing.NewSalesLedgerUseCase(store, repos.Sales, recorder)
	customers := billing.NewCustomerUseCase(store, repos.Customers, recorder)

	materialID, err := stock.RegisterMaterial(ctx, dto.RegisterMaterialRequest{
		Name: "Süprem", Type: entity.MaterialTypeEnli, Supplier: "Acme",
	})
	require.NoError(t, err)
	_, err = stock.AddRolls(ctx, dto.AddRollsRequest{
		Name: "Süprem", Type: entity.MaterialTypeEnli, Quantities: []decimal.Decimal{d("40"), d("60")},
	})
	require.NoError(t, err)
	_, err = stock.AdjustStock(ctx, materialID, dto.AdjustStockRequest{Delta: d("100")})
	require.NoError(t, err)

	customer, err := customers.Create(ctx, dto.CreateCustomerRequest{Name: "Ayşe"})
	require.NoError(t, err)

	amount := d("0.1")
	saleID, err := sales.RecordSale(ctx, dto.RecordSaleRequest{
		MaterialID: materialID, CustomerID: &customer.ID, QuantitySold: d("30"), Price: d("2"), AmountDue: &amount,
	})
	require.NoError(t, err)
	amount = d("0.2")
	_, err = sales.RecordSale(ctx, dto.RecordSaleRequest{
		MaterialID: materialID, CustomerID: &customer.ID, QuantitySold: d("10"), Price: d("2"), AmountDue: &amount,
	})
	require.NoError(t, err)

	c, err := customers.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.3", c.Debt.String(), "la deuda se suma sin pasar por float")

	_, err = sales.RecordSale(ctx, dto.RecordSaleRequest{MaterialID: materialID, QuantitySold: d("61"), Price: d("1")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, sales.DeleteSale(ctx, saleID))
	m, err := stock.Get(ctx, materialID)
	require.NoError(t, err)
	assert.True(t, m.TotalQuantity.Equal(d("90")))
	assert.Len(t, m.Rolls, 2)

	require.NoError(t, stock.DeleteMaterial(ctx, materialID))
	rolls, err := repos.Rolls.ListByMaterialIDs(ctx, []string{materialID})
	require.NoError(t, err)
	assert.Empty(t, rolls)

	list, err := sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.DeletedMaterial, list[0].Material)
	assert.Equal(t, "Ayşe", list[0].Customer)

	logs, err := audit.NewUseCase(repos.Logs).List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.ActionDelete, logs[0].ActionType)
	assert.Equal(t, entity.TableMaterials, logs[0].TableName)
	assert.Equal(t, entity.TableSales, logs[1].TableName)
}

func TestOpen_ArchivoPersiste(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.db")
	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	now := time.Now().UTC()
	require.NoError(t, store.Repos().Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ayşe", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Migrate(ctx))
	c, err := reopened.Repos().Customers.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Ayşe", c.Name)
	assert.True(t, c.Debt.IsZero())
}

func TestOpen_ForeignKeysEnCadaConexion(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Migrate(ctx))

	// Sin conexiones ociosas cada consulta abre una conexión nueva.
	store.DB().SetMaxIdleConns(0)
	for i := 0; i < 3; i++ {
		var on int
		require.NoError(t, store.DB().QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&on))
		assert.Equal(t, 1, on, "conexión %d sin foreign_keys", i)
	}

	repos := store.Repos()
	now := time.Now().UTC()
	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{
		ID: "m1", Name: "Lino", Type: entity.MaterialTypeEnli, Supplier: "Sur", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Rolls.CreateBatch(ctx, []*entity.Roll{
		{ID: "r1", MaterialID: "m1", Quantity: d("10"), CreatedAt: now},
	}))
	require.NoError(t, repos.Materials.Delete(ctx, "m1"))

	rolls, err := repos.Rolls.ListByMaterialIDs(ctx, []string{"m1"})
	require.NoError(t, err)
	assert.Empty(t, rolls, "ON DELETE CASCADE debe borrar los rollos")
}

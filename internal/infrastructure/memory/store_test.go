package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func newMaterial(id, name, supplier string) *entity.Material {
	now := time.Now().UTC()
	return &entity.Material{
		ID:            id,
		Name:          name,
		Type:          entity.MaterialTypeEnli,
		Supplier:      supplier,
		TotalQuantity: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestRun_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Repos().Materials.Create(ctx, newMaterial("m1", "Kumaş", "Acme")))

	boom := errors.New("boom")
	err := store.Run(ctx, func(r ports.Repos) error {
		require.NoError(t, r.Materials.UpdateTotalQuantity(ctx, "m1", decimal.NewFromInt(50)))
		require.NoError(t, r.Materials.Create(ctx, newMaterial("m2", "Penye", "Acme")))
		require.NoError(t, r.Logs.Append(ctx, &entity.ActivityLog{ID: "l1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.Repos().Materials.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, m.TotalQuantity.IsZero(), "el cambio debe descartarse")

	m2, err := store.Repos().Materials.GetByID(ctx, "m2")
	require.NoError(t, err)
	assert.Nil(t, m2)

	logs, err := store.Repos().Logs.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMaterials_DuplicadoYBusquedas(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Repos().Materials
	require.NoError(t, repo.Create(ctx, newMaterial("m1", "Kumaş", "Acme")))
	require.NoError(t, repo.Create(ctx, newMaterial("m2", "Kumaş", "Beta")))

	err := repo.Create(ctx, newMaterial("m3", "Kumaş", "Acme"))
	assert.ErrorIs(t, err, domain.ErrDuplicateMaterial)

	oldest, err := repo.FindByNameAndType(ctx, "Kumaş", entity.MaterialTypeEnli)
	require.NoError(t, err)
	require.NotNil(t, oldest)
	assert.Equal(t, "m1", oldest.ID)

	byKey, err := repo.FindByKey(ctx, "Kumaş", entity.MaterialTypeEnli, "Beta")
	require.NoError(t, err)
	require.NotNil(t, byKey)
	assert.Equal(t, "m2", byKey.ID)

	missing, err := repo.FindByKey(ctx, "Kumaş", entity.MaterialTypeEnsiz, "Beta")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMaterials_DeleteEliminaRollos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	require.NoError(t, repos.Materials.Create(ctx, newMaterial("m1", "Kumaş", "Acme")))
	require.NoError(t, repos.Rolls.CreateBatch(ctx, []*entity.Roll{
		{ID: "r1", MaterialID: "m1", Quantity: decimal.NewFromInt(10)},
		{ID: "r2", MaterialID: "m1", Quantity: decimal.NewFromInt(20)},
	}))

	require.NoError(t, repos.Materials.Delete(ctx, "m1"))

	rolls, err := repos.Rolls.ListByMaterialIDs(ctx, []string{"m1"})
	require.NoError(t, err)
	assert.Empty(t, rolls)
}

func TestLogs_OrdenYPaginacion(t *testing.T) {
	ctx := context.Background()
	logs := memory.New().Repos().Logs
	for _, id := range []string{"a", "b", "c", "d"} {
		entry := &entity.ActivityLog{ID: id}
		require.NoError(t, logs.Append(ctx, entry))
		assert.Positive(t, entry.Seq)
	}

	all, err := logs.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "d", all[0].ID, "la más reciente primero")
	assert.Equal(t, "a", all[3].ID)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].Seq, all[i].Seq)
	}

	page, err := logs.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID)
	assert.Equal(t, "b", page[1].ID)
}

func TestSales_JoinConReferenciasBorradas(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.Materials.Create(ctx, newMaterial("m1", "Kumaş", "Acme")))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ayşe"}))
	customerID := "c1"
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
		ID: "s1", MaterialID: "m1", CustomerID: &customerID,
		QuantitySold: decimal.NewFromInt(1), Price: decimal.NewFromInt(5),
	}))

	row, err := repos.Sales.GetRow(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, row.MaterialName)
	require.NotNil(t, row.CustomerName)
	assert.Equal(t, "Ayşe", *row.CustomerName)

	require.NoError(t, repos.Customers.Delete(ctx, "c1"))
	require.NoError(t, repos.Materials.Delete(ctx, "m1"))

	rows, err := repos.Sales.ListRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CustomerName)
	assert.Nil(t, rows[0].MaterialName)
}

func TestClose_RechazaOperaciones(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Close())
	assert.ErrorIs(t, store.Ping(context.Background()), domain.ErrStorageFailure)
	err := store.Run(context.Background(), func(ports.Repos) error { return nil })
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// Requiere DATABASE_URL apuntando a una base de pruebas.
func TestRollRepo_CreateBatch(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, Migrate(ctx, pool, zerolog.Nop()))

	now := time.Now().UTC()
	material := &entity.Material{
		ID: uuid.NewString(), Name: "Lino", Type: entity.MaterialTypeEnli,
		Supplier: "batch-" + uuid.NewString(), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewMaterialRepository(pool).Create(ctx, material))
	rolls := NewRollRepository(pool)

	require.NoError(t, rolls.CreateBatch(ctx, []*entity.Roll{
		{ID: uuid.NewString(), MaterialID: material.ID, Quantity: decimal.RequireFromString("40"), CreatedAt: now},
		{ID: uuid.NewString(), MaterialID: material.ID, Quantity: decimal.RequireFromString("60.5"), CreatedAt: now},
	}))
	got, err := rolls.ListByMaterialIDs(ctx, []string{material.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// FK violada: el error del lote tiene que llegar al llamador.
	err = rolls.CreateBatch(ctx, []*entity.Roll{
		{ID: uuid.NewString(), MaterialID: uuid.NewString(), Quantity: decimal.RequireFromString("1"), CreatedAt: now},
	})
	assert.Error(t, err)
}

package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// SaleRow proyección de una venta con los nombres resueltos por join explícito.
// MaterialName/CustomerName quedan nil si la referencia ya no existe.
type SaleRow struct {
	Sale         entity.Sale
	MaterialName *string
	CustomerName *string
}

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	GetRow(ctx context.Context, id string) (*SaleRow, error)
	ListRows(ctx context.Context) ([]SaleRow, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialRepository define el puerto de persistencia para Material.
// Los métodos Get/Find devuelven (nil, nil) cuando no existe el registro.
type MaterialRepository interface {
	// Create devuelve domain.ErrDuplicateMaterial si (name, type, supplier) ya existe.
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	FindByKey(ctx context.Context, name, materialType, supplier string) (*entity.Material, error)
	// FindByNameAndType devuelve el material más antiguo con ese nombre y tipo.
	FindByNameAndType(ctx context.Context, name, materialType string) (*entity.Material, error)
	List(ctx context.Context) ([]*entity.Material, error)
	UpdateTotalQuantity(ctx context.Context, id string, total decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	// Update persiste nombre, contacto y ubicación; la deuda solo cambia con AddDebt.
	Update(ctx context.Context, customer *entity.Customer) error
	// AddDebt incrementa la deuda de forma atómica (debt = debt + amount).
	AddDebt(ctx context.Context, id string, amount decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

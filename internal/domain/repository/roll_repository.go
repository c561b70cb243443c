package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RollRepository define el puerto de persistencia para los rollos de un material.
type RollRepository interface {
	CreateBatch(ctx context.Context, rolls []*entity.Roll) error
	GetByID(ctx context.Context, id string) (*entity.Roll, error)
	ListByMaterialIDs(ctx context.Context, materialIDs []string) ([]*entity.Roll, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	DeleteByMaterial(ctx context.Context, materialID string) (int64, error)
}

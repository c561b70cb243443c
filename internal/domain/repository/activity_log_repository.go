package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ActivityLogRepository define el puerto de la bitácora de auditoría.
// Solo permite agregar y listar: no hay actualización ni borrado de entradas.
type ActivityLogRepository interface {
	// Append persiste la entrada y asigna entry.Seq.
	Append(ctx context.Context, entry *entity.ActivityLog) error
	// List devuelve las entradas de la más reciente a la más antigua; limit <= 0 devuelve todas.
	List(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, error)
}

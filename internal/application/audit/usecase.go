package audit

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// UseCase expone la bitácora en modo solo lectura.
type UseCase struct {
	repo repository.ActivityLogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ActivityLogRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve las entradas de la más reciente a la más antigua.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ActivityLogResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ActivityLogResponse{
			ID:         e.ID,
			ActionType: e.ActionType,
			TableName:  e.TableName,
			RecordID:   e.RecordID,
			Changes:    e.Changes,
			Actor:      e.Actor,
			Timestamp:  e.CreatedAt,
		})
	}
	return out, nil
}

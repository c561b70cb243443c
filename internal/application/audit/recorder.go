package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Recorder construye entradas de auditoría y las agrega usando el repositorio de la
// transacción en curso: si el append falla, la operación completa hace rollback.
type Recorder struct {
	now func() time.Time
}

// NewRecorder construye el registrador con reloj UTC.
func NewRecorder() *Recorder {
	return &Recorder{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock reemplaza el reloj (tests).
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// Record serializa payload de forma opaca y agrega una entrada.
// Cualquier error se reporta como domain.ErrStorageFailure.
func (r *Recorder) Record(
	ctx context.Context,
	logs repository.ActivityLogRepository,
	action, table, recordID string,
	payload any,
) error {
	changes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: serializar cambios: %w", domain.ErrStorageFailure, err)
	}
	entry := &entity.ActivityLog{
		ID:         uuid.New().String(),
		ActionType: action,
		TableName:  table,
		RecordID:   recordID,
		Changes:    changes,
		Actor:      ActorFromContext(ctx),
		CreatedAt:  r.now(),
	}
	if err := logs.Append(ctx, entry); err != nil {
		return fmt.Errorf("%w: registrar auditoría: %w", domain.ErrStorageFailure, err)
	}
	return nil
}

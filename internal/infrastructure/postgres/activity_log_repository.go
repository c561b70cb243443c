package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora append-only. No expone UPDATE ni DELETE.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append inserta la entrada y asigna Seq desde la secuencia.
func (r *ActivityLogRepo) Append(ctx context.Context, entry *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, action_type, table_name, record_id, changes, actor, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		entry.ID, entry.ActionType, entry.TableName, entry.RecordID, string(entry.Changes), entry.Actor, entry.CreatedAt,
	).Scan(&entry.Seq)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List devuelve las entradas de la más reciente a la más antigua. limit <= 0 devuelve todas.
func (r *ActivityLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT seq, id, action_type, table_name, record_id, changes, actor, created_at
		FROM activity_logs ORDER BY seq DESC OFFSET $1`
	args := []any{offset}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var e entity.ActivityLog
		var changes []byte
		if err := rows.Scan(&e.Seq, &e.ID, &e.ActionType, &e.TableName, &e.RecordID, &changes, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		e.Changes = changes
		list = append(list, &e)
	}
	return list, rows.Err()
}

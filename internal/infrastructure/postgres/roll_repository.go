package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.RollRepository = (*RollRepo)(nil)

// RollRepo implementación de RollRepository.
type RollRepo struct {
	q Querier
}

// NewRollRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRollRepository(q Querier) *RollRepo {
	return &RollRepo{q: q}
}

// CreateBatch inserta todos los rollos en un solo round-trip.
func (r *RollRepo) CreateBatch(ctx context.Context, rolls []*entity.Roll) error {
	if len(rolls) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, roll := range rolls {
		batch.Queue(
			`INSERT INTO material_rolls (id, material_id, quantity, created_at) VALUES ($1, $2, $3, $4)`,
			roll.ID, roll.MaterialID, roll.Quantity, roll.CreatedAt,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	for range rolls {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert roll: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	return nil
}

// GetByID obtiene un rollo.
func (r *RollRepo) GetByID(ctx context.Context, id string) (*entity.Roll, error) {
	if !validID(id) {
		return nil, nil
	}
	var roll entity.Roll
	err := r.q.QueryRow(ctx,
		`SELECT id, material_id, quantity, created_at FROM material_rolls WHERE id = $1`, id,
	).Scan(&roll.ID, &roll.MaterialID, &roll.Quantity, &roll.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get roll: %w", err)
	}
	return &roll, nil
}

// ListByMaterialIDs lista los rollos de varios materiales en una sola consulta.
func (r *RollRepo) ListByMaterialIDs(ctx context.Context, materialIDs []string) ([]*entity.Roll, error) {
	ids := make([]string, 0, len(materialIDs))
	for _, id := range materialIDs {
		if validID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, material_id, quantity, created_at
		FROM material_rolls WHERE material_id = ANY($1::uuid[])
		ORDER BY created_at, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	defer rows.Close()
	var list []*entity.Roll
	for rows.Next() {
		var roll entity.Roll
		if err := rows.Scan(&roll.ID, &roll.MaterialID, &roll.Quantity, &roll.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		list = append(list, &roll)
	}
	return list, rows.Err()
}

// UpdateQuantity cambia la cantidad de un rollo.
func (r *RollRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	if !validID(id) {
		return domain.ErrRollNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE material_rolls SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update roll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRollNotFound
	}
	return nil
}

// Delete elimina un rollo.
func (r *RollRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrRollNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM material_rolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete roll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRollNotFound
	}
	return nil
}

// DeleteByMaterial elimina todos los rollos de un material y devuelve cuántos borró.
func (r *RollRepo) DeleteByMaterial(ctx context.Context, materialID string) (int64, error) {
	if !validID(materialID) {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM material_rolls WHERE material_id = $1`, materialID)
	if err != nil {
		return 0, fmt.Errorf("delete rolls by material: %w", err)
	}
	return tag.RowsAffected(), nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, type, colour, supplier, total_quantity, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.Name, &m.Type, &m.Colour, &m.Supplier, &m.TotalQuantity, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un material nuevo.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, type, colour, supplier, total_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Type, m.Colour, m.Supplier, m.TotalQuantity, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMaterial
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get material", `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetForUpdate obtiene el material y bloquea la fila para update (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get material for update",
		`SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

// FindByKey busca por la clave única (name, type, supplier).
func (r *MaterialRepo) FindByKey(ctx context.Context, name, materialType, supplier string) (*entity.Material, error) {
	return r.getOne(ctx, "find material",
		`SELECT `+materialColumns+` FROM materials WHERE name = $1 AND type = $2 AND supplier = $3`,
		name, materialType, supplier)
}

// FindByNameAndType devuelve el material más antiguo con ese nombre y tipo.
func (r *MaterialRepo) FindByNameAndType(ctx context.Context, name, materialType string) (*entity.Material, error) {
	return r.getOne(ctx, "find material by name",
		`SELECT `+materialColumns+` FROM materials WHERE name = $1 AND type = $2
		 ORDER BY created_at, id LIMIT 1`,
		name, materialType)
}

// List lista todos los materiales por orden de creación.
func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpdateTotalQuantity fija el stock vendible.
func (r *MaterialRepo) UpdateTotalQuantity(ctx context.Context, id string, total decimal.Decimal) error {
	if !validID(id) {
		return domain.ErrMaterialNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE materials SET total_quantity = $2, updated_at = $3 WHERE id = $1`,
		id, total, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update material quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// Delete elimina un material. Los rollos caen por ON DELETE CASCADE.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrMaterialNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

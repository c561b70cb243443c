package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleRowQuery = `
	SELECT s.id, s.material_id, s.customer_id, s.quantity_sold, s.price, s.date, m.name, c.name
	FROM sales s
	LEFT JOIN materials m ON m.id = s.material_id
	LEFT JOIN customers c ON c.id = s.customer_id`

// SaleRepo implementación de SaleRepository. Las ventas no tienen FK: sobreviven al
// borrado del material o del cliente y los joins devuelven NULL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, material_id, customer_id, quantity_sold, price, date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.MaterialID, sale.CustomerID, sale.QuantitySold, sale.Price, sale.Date,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) getOne(ctx context.Context, op, query, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.MaterialID, &s.CustomerID, &s.QuantitySold, &s.Price, &s.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

// GetByID obtiene una venta.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, "get sale", `
		SELECT id, material_id, customer_id, quantity_sold, price, date
		FROM sales WHERE id = $1`, id)
}

// GetForUpdate obtiene la venta y bloquea la fila (SELECT FOR UPDATE).
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, "get sale for update", `
		SELECT id, material_id, customer_id, quantity_sold, price, date
		FROM sales WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste cantidad y precio.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	if !validID(sale.ID) {
		return domain.ErrSaleNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE sales SET quantity_sold = $2, price = $3 WHERE id = $1`,
		sale.ID, sale.QuantitySold, sale.Price)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// Delete elimina una venta.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrSaleNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func scanSaleRow(row pgx.Row) (*repository.SaleRow, error) {
	var out repository.SaleRow
	s := &out.Sale
	if err := row.Scan(
		&s.ID, &s.MaterialID, &s.CustomerID, &s.QuantitySold, &s.Price, &s.Date,
		&out.MaterialName, &out.CustomerName,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRow obtiene una venta con los nombres de material y cliente.
func (r *SaleRepo) GetRow(ctx context.Context, id string) (*repository.SaleRow, error) {
	if !validID(id) {
		return nil, nil
	}
	row, err := scanSaleRow(r.q.QueryRow(ctx, saleRowQuery+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale row: %w", err)
	}
	return row, nil
}

// ListRows lista todas las ventas por fecha.
func (r *SaleRepo) ListRows(ctx context.Context) ([]repository.SaleRow, error) {
	rows, err := r.q.Query(ctx, saleRowQuery+` ORDER BY s.date, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleRow
	for rows.Next() {
		row, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, *row)
	}
	return list, rows.Err()
}

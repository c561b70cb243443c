package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.MaterialRepository    = (*materialRepo)(nil)
	_ repository.RollRepository        = (*rollRepo)(nil)
	_ repository.CustomerRepository    = (*customerRepo)(nil)
	_ repository.SaleRepository        = (*saleRepo)(nil)
	_ repository.ActivityLogRepository = (*activityLogRepo)(nil)
)

type rowScanner interface {
	Scan(dest ...any) error
}

const materialColumns = `id, name, type, colour, supplier, total_quantity, created_at, updated_at`

type materialRepo struct{ q Querier }

func scanMaterial(row rowScanner) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.Name, &m.Type, &m.Colour, &m.Supplier, &m.TotalQuantity, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) Create(ctx context.Context, m *entity.Material) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO materials (id, name, type, colour, supplier, total_quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Type, m.Colour, m.Supplier, m.TotalQuantity, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMaterial
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *materialRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func (r *materialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, "get material", `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id)
}

// GetForUpdate equivale a GetByID: la única conexión ya serializa las transacciones.
func (r *materialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *materialRepo) FindByKey(ctx context.Context, name, materialType, supplier string) (*entity.Material, error) {
	return r.getOne(ctx, "find material",
		`SELECT `+materialColumns+` FROM materials WHERE name = ? AND type = ? AND supplier = ?`,
		name, materialType, supplier)
}

func (r *materialRepo) FindByNameAndType(ctx context.Context, name, materialType string) (*entity.Material, error) {
	return r.getOne(ctx, "find material by name",
		`SELECT `+materialColumns+` FROM materials WHERE name = ? AND type = ? ORDER BY rowid LIMIT 1`,
		name, materialType)
}

func (r *materialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer func() { _ = rows.Close() }()
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

func (r *materialRepo) UpdateTotalQuantity(ctx context.Context, id string, total decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE materials SET total_quantity = ?, updated_at = ? WHERE id = ?`,
		total, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update material quantity: %w", err)
	}
	return affected(res, domain.ErrMaterialNotFound)
}

func (r *materialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM materials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return affected(res, domain.ErrMaterialNotFound)
}

type rollRepo struct{ q Querier }

func (r *rollRepo) CreateBatch(ctx context.Context, rolls []*entity.Roll) error {
	for _, roll := range rolls {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO material_rolls (id, material_id, quantity, created_at) VALUES (?, ?, ?, ?)`,
			roll.ID, roll.MaterialID, roll.Quantity, roll.CreatedAt); err != nil {
			return fmt.Errorf("insert roll: %w", err)
		}
	}
	return nil
}

func (r *rollRepo) GetByID(ctx context.Context, id string) (*entity.Roll, error) {
	var roll entity.Roll
	err := r.q.QueryRowContext(ctx,
		`SELECT id, material_id, quantity, created_at FROM material_rolls WHERE id = ?`, id,
	).Scan(&roll.ID, &roll.MaterialID, &roll.Quantity, &roll.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get roll: %w", err)
	}
	return &roll, nil
}

func (r *rollRepo) ListByMaterialIDs(ctx context.Context, materialIDs []string) ([]*entity.Roll, error) {
	if len(materialIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(materialIDs))
	for i, id := range materialIDs {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(materialIDs)), ",")
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, material_id, quantity, created_at
		FROM material_rolls WHERE material_id IN (`+placeholders+`)
		ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	defer func() { _ = rows.Close() }()
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

func (r *rollRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx, `UPDATE material_rolls SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("update roll: %w", err)
	}
	return affected(res, domain.ErrRollNotFound)
}

func (r *rollRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM material_rolls WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete roll: %w", err)
	}
	return affected(res, domain.ErrRollNotFound)
}

func (r *rollRepo) DeleteByMaterial(ctx context.Context, materialID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM material_rolls WHERE material_id = ?`, materialID)
	if err != nil {
		return 0, fmt.Errorf("delete rolls by material: %w", err)
	}
	return res.RowsAffected()
}

type customerRepo struct{ q Querier }

const customerColumns = `id, name, contact, location, debt, created_at, updated_at`

func scanCustomer(row rowScanner) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Contact, &c.Location, &c.Debt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (id, name, contact, location, debt, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Contact, c.Location, c.Debt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *customerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *customerRepo) Update(ctx context.Context, c *entity.Customer) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE customers SET name = ?, contact = ?, location = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Contact, c.Location, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return affected(res, domain.ErrCustomerNotFound)
}

// AddDebt suma en Go: la aritmética de SQLite sobre TEXT pasaría por REAL.
// Es atómico porque la única conexión serializa las transacciones.
func (r *customerRepo) AddDebt(ctx context.Context, id string, amount decimal.Decimal) error {
	var debt decimal.Decimal
	err := r.q.QueryRowContext(ctx, `SELECT debt FROM customers WHERE id = ?`, id).Scan(&debt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCustomerNotFound
		}
		return fmt.Errorf("get customer debt: %w", err)
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE customers SET debt = ?, updated_at = ? WHERE id = ?`,
		debt.Add(amount), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("add customer debt: %w", err)
	}
	return affected(res, domain.ErrCustomerNotFound)
}

func (r *customerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return affected(res, domain.ErrCustomerNotFound)
}

type saleRepo struct{ q Querier }

const saleRowQuery = `
	SELECT s.id, s.material_id, s.customer_id, s.quantity_sold, s.price, s.date, m.name, c.name
	FROM sales s
	LEFT JOIN materials m ON m.id = s.material_id
	LEFT JOIN customers c ON c.id = s.customer_id`

func (r *saleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sales (id, material_id, customer_id, quantity_sold, price, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.MaterialID, s.CustomerID, s.QuantitySold, s.Price, s.Date)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *saleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRowContext(ctx, `
		SELECT id, material_id, customer_id, quantity_sold, price, date FROM sales WHERE id = ?`, id,
	).Scan(&s.ID, &s.MaterialID, &s.CustomerID, &s.QuantitySold, &s.Price, &s.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) Update(ctx context.Context, s *entity.Sale) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sales SET quantity_sold = ?, price = ? WHERE id = ?`, s.QuantitySold, s.Price, s.ID)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return affected(res, domain.ErrSaleNotFound)
}

func (r *saleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return affected(res, domain.ErrSaleNotFound)
}

func scanSaleRow(row rowScanner) (*repository.SaleRow, error) {
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

func (r *saleRepo) GetRow(ctx context.Context, id string) (*repository.SaleRow, error) {
	row, err := scanSaleRow(r.q.QueryRowContext(ctx, saleRowQuery+` WHERE s.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale row: %w", err)
	}
	return row, nil
}

func (r *saleRepo) ListRows(ctx context.Context) ([]repository.SaleRow, error) {
	rows, err := r.q.QueryContext(ctx, saleRowQuery+` ORDER BY s.rowid`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer func() { _ = rows.Close() }()
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

type activityLogRepo struct{ q Querier }

func (r *activityLogRepo) Append(ctx context.Context, e *entity.ActivityLog) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO activity_logs (id, action_type, table_name, record_id, changes, actor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ActionType, e.TableName, e.RecordID, string(e.Changes), e.Actor, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("activity log seq: %w", err)
	}
	e.Seq = seq
	return nil
}

func (r *activityLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, error) {
	if limit <= 0 {
		limit = -1 // SQLite: LIMIT -1 = sin límite
	}
	rows, err := r.q.QueryContext(ctx, `
		SELECT seq, id, action_type, table_name, record_id, changes, actor, created_at
		FROM activity_logs ORDER BY seq DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.ActivityLog
	for rows.Next() {
		var e entity.ActivityLog
		var changes string
		if err := rows.Scan(&e.Seq, &e.ID, &e.ActionType, &e.TableName, &e.RecordID, &changes, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		e.Changes = []byte(changes)
		list = append(list, &e)
	}
	return list, rows.Err()
}

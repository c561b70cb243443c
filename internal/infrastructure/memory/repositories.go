package memory

import (
	"context"
	"fmt"

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

type materialRepo struct {
	s    *Store
	inTx bool
}

func (r *materialRepo) Create(_ context.Context, m *entity.Material) error {
	return r.s.write(r.inTx, func(st *state) error {
		for _, existing := range st.materials {
			v := existing.v
			if v.Name == m.Name && v.Type == m.Type && v.Supplier == m.Supplier {
				return domain.ErrDuplicateMaterial
			}
		}
		if _, ok := st.materials[m.ID]; ok {
			return fmt.Errorf("insert material: id duplicado %s", m.ID)
		}
		st.materials[m.ID] = row[entity.Material]{seq: st.next(), v: *m}
		return nil
	})
}

func (r *materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	r.s.read(r.inTx, func(st *state) {
		if m, ok := st.materials[id]; ok {
			v := m.v
			out = &v
		}
	})
	return out, nil
}

// GetForUpdate no necesita bloqueo adicional: Run ya tiene acceso exclusivo.
func (r *materialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *materialRepo) FindByKey(_ context.Context, name, materialType, supplier string) (*entity.Material, error) {
	var out *entity.Material
	r.s.read(r.inTx, func(st *state) {
		for _, m := range st.materials {
			if m.v.Name == name && m.v.Type == materialType && m.v.Supplier == supplier {
				v := m.v
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r *materialRepo) FindByNameAndType(_ context.Context, name, materialType string) (*entity.Material, error) {
	var out *entity.Material
	r.s.read(r.inTx, func(st *state) {
		list := sortedValues(st.materials, func(m entity.Material) bool {
			return m.Name == name && m.Type == materialType
		})
		if len(list) > 0 {
			out = &list[0]
		}
	})
	return out, nil
}

func (r *materialRepo) List(context.Context) ([]*entity.Material, error) {
	var out []*entity.Material
	r.s.read(r.inTx, func(st *state) {
		for _, m := range sortedValues(st.materials, nil) {
			v := m
			out = append(out, &v)
		}
	})
	return out, nil
}

func (r *materialRepo) UpdateTotalQuantity(_ context.Context, id string, total decimal.Decimal) error {
	return r.s.write(r.inTx, func(st *state) error {
		m, ok := st.materials[id]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		m.v.TotalQuantity = total
		st.materials[id] = m
		return nil
	})
}

func (r *materialRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.materials[id]; !ok {
			return domain.ErrMaterialNotFound
		}
		// Igual que ON DELETE CASCADE en SQL.
		for rid, roll := range st.rolls {
			if roll.v.MaterialID == id {
				delete(st.rolls, rid)
			}
		}
		delete(st.materials, id)
		return nil
	})
}

type rollRepo struct {
	s    *Store
	inTx bool
}

func (r *rollRepo) CreateBatch(_ context.Context, rolls []*entity.Roll) error {
	return r.s.write(r.inTx, func(st *state) error {
		for _, roll := range rolls {
			if _, ok := st.materials[roll.MaterialID]; !ok {
				return fmt.Errorf("insert roll: material %s inexistente", roll.MaterialID)
			}
			st.rolls[roll.ID] = row[entity.Roll]{seq: st.next(), v: *roll}
		}
		return nil
	})
}

func (r *rollRepo) GetByID(_ context.Context, id string) (*entity.Roll, error) {
	var out *entity.Roll
	r.s.read(r.inTx, func(st *state) {
		if roll, ok := st.rolls[id]; ok {
			v := roll.v
			out = &v
		}
	})
	return out, nil
}

func (r *rollRepo) ListByMaterialIDs(_ context.Context, materialIDs []string) ([]*entity.Roll, error) {
	want := make(map[string]struct{}, len(materialIDs))
	for _, id := range materialIDs {
		want[id] = struct{}{}
	}
	var out []*entity.Roll
	r.s.read(r.inTx, func(st *state) {
		for _, roll := range sortedValues(st.rolls, func(v entity.Roll) bool {
			_, ok := want[v.MaterialID]
			return ok
		}) {
			v := roll
			out = append(out, &v)
		}
	})
	return out, nil
}

func (r *rollRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	return r.s.write(r.inTx, func(st *state) error {
		roll, ok := st.rolls[id]
		if !ok {
			return domain.ErrRollNotFound
		}
		roll.v.Quantity = quantity
		st.rolls[id] = roll
		return nil
	})
}

func (r *rollRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.rolls[id]; !ok {
			return domain.ErrRollNotFound
		}
		delete(st.rolls, id)
		return nil
	})
}

func (r *rollRepo) DeleteByMaterial(_ context.Context, materialID string) (int64, error) {
	var n int64
	err := r.s.write(r.inTx, func(st *state) error {
		for id, roll := range st.rolls {
			if roll.v.MaterialID == materialID {
				delete(st.rolls, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

type customerRepo struct {
	s    *Store
	inTx bool
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return fmt.Errorf("insert customer: id duplicado %s", c.ID)
		}
		st.customers[c.ID] = row[entity.Customer]{seq: st.next(), v: *c}
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.s.read(r.inTx, func(st *state) {
		if c, ok := st.customers[id]; ok {
			v := c.v
			out = &v
		}
	})
	return out, nil
}

func (r *customerRepo) List(context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	r.s.read(r.inTx, func(st *state) {
		for _, c := range sortedValues(st.customers, nil) {
			v := c
			out = append(out, &v)
		}
	})
	return out, nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.s.write(r.inTx, func(st *state) error {
		existing, ok := st.customers[c.ID]
		if !ok {
			return domain.ErrCustomerNotFound
		}
		existing.v.Name = c.Name
		existing.v.Contact = c.Contact
		existing.v.Location = c.Location
		existing.v.UpdatedAt = c.UpdatedAt
		st.customers[c.ID] = existing
		return nil
	})
}

func (r *customerRepo) AddDebt(_ context.Context, id string, amount decimal.Decimal) error {
	return r.s.write(r.inTx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return domain.ErrCustomerNotFound
		}
		c.v.Debt = c.v.Debt.Add(amount)
		st.customers[id] = c
		return nil
	})
}

func (r *customerRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.ErrCustomerNotFound
		}
		delete(st.customers, id)
		return nil
	})
}

type saleRepo struct {
	s    *Store
	inTx bool
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.sales[sale.ID]; ok {
			return fmt.Errorf("insert sale: id duplicado %s", sale.ID)
		}
		st.sales[sale.ID] = row[entity.Sale]{seq: st.next(), v: *sale}
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.s.read(r.inTx, func(st *state) {
		if sale, ok := st.sales[id]; ok {
			v := sale.v
			out = &v
		}
	})
	return out, nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) Update(_ context.Context, sale *entity.Sale) error {
	return r.s.write(r.inTx, func(st *state) error {
		existing, ok := st.sales[sale.ID]
		if !ok {
			return domain.ErrSaleNotFound
		}
		existing.v.QuantitySold = sale.QuantitySold
		existing.v.Price = sale.Price
		st.sales[sale.ID] = existing
		return nil
	})
}

func (r *saleRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.ErrSaleNotFound
		}
		delete(st.sales, id)
		return nil
	})
}

func (r *saleRepo) GetRow(_ context.Context, id string) (*repository.SaleRow, error) {
	var out *repository.SaleRow
	r.s.read(r.inTx, func(st *state) {
		if sale, ok := st.sales[id]; ok {
			row := joinSale(st, sale.v)
			out = &row
		}
	})
	return out, nil
}

func (r *saleRepo) ListRows(context.Context) ([]repository.SaleRow, error) {
	var out []repository.SaleRow
	r.s.read(r.inTx, func(st *state) {
		for _, sale := range sortedValues(st.sales, nil) {
			out = append(out, joinSale(st, sale))
		}
	})
	return out, nil
}

func joinSale(st *state, sale entity.Sale) repository.SaleRow {
	out := repository.SaleRow{Sale: sale}
	if m, ok := st.materials[sale.MaterialID]; ok {
		name := m.v.Name
		out.MaterialName = &name
	}
	if sale.CustomerID != nil {
		if c, ok := st.customers[*sale.CustomerID]; ok {
			name := c.v.Name
			out.CustomerName = &name
		}
	}
	return out
}

type activityLogRepo struct {
	s    *Store
	inTx bool
}

func (r *activityLogRepo) Append(_ context.Context, entry *entity.ActivityLog) error {
	return r.s.write(r.inTx, func(st *state) error {
		entry.Seq = st.next()
		st.logs = append(st.logs, *entry)
		return nil
	})
}

func (r *activityLogRepo) List(_ context.Context, limit, offset int) ([]*entity.ActivityLog, error) {
	var out []*entity.ActivityLog
	r.s.read(r.inTx, func(st *state) {
		skipped := 0
		for i := len(st.logs) - 1; i >= 0; i-- {
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			v := st.logs[i]
			out = append(out, &v)
		}
	})
	return out, nil
}

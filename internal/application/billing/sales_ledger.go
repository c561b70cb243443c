package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// SalesLedgerUseCase registra ventas y mantiene consistentes el stock del material,
// la deuda del cliente y la bitácora, en una sola transacción por operación.
type SalesLedgerUseCase struct {
	txRunner ports.TxRunner
	saleRepo repository.SaleRepository
	recorder *audit.Recorder
	now      func() time.Time
}

// NewSalesLedgerUseCase construye el caso de uso.
func NewSalesLedgerUseCase(txRunner ports.TxRunner, saleRepo repository.SaleRepository, recorder *audit.Recorder) *SalesLedgerUseCase {
	return &SalesLedgerUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		recorder: recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordSale bloquea la fila del material (SELECT FOR UPDATE), verifica
// TotalQuantity >= QuantitySold, descuenta, crea la venta y suma AmountDue a la deuda
// del cliente si ambos vienen informados. AmountDue no se concilia con cantidad × precio.
func (uc *SalesLedgerUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (string, error) {
	// Un material_id vacío no se valida aquí: cae en la búsqueda y responde ErrMaterialNotFound.
	if !in.QuantitySold.GreaterThan(decimal.Zero) || in.Price.LessThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	if in.CustomerID != nil && *in.CustomerID == "" {
		in.CustomerID = nil
	}

	sale := &entity.Sale{
		ID:           uuid.New().String(),
		MaterialID:   in.MaterialID,
		CustomerID:   in.CustomerID,
		QuantitySold: in.QuantitySold,
		Price:        in.Price,
		Date:         uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		material, err := r.Materials.GetForUpdate(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrMaterialNotFound
		}
		if !inventory.CanSell(material.TotalQuantity, in.QuantitySold) {
			return domain.ErrInsufficientStock
		}
		if in.CustomerID != nil {
			customer, err := r.Customers.GetByID(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrCustomerNotFound
			}
		}

		if err := r.Materials.UpdateTotalQuantity(ctx, material.ID,
			inventory.Deduct(material.TotalQuantity, in.QuantitySold)); err != nil {
			return err
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		if in.CustomerID != nil && in.AmountDue != nil {
			if err := r.Customers.AddDebt(ctx, *in.CustomerID, *in.AmountDue); err != nil {
				return err
			}
		}

		summary := map[string]any{
			"material_id":   in.MaterialID,
			"customer_id":   in.CustomerID,
			"quantity_sold": in.QuantitySold,
			"price":         in.Price,
		}
		if in.AmountDue != nil {
			summary["amount_due"] = *in.AmountDue
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionSale, entity.TableSales, sale.ID, summary)
	})
	if err != nil {
		return "", err
	}
	return sale.ID, nil
}

// UpdateSale revierte la cantidad actual de la venta sobre el material y aplica la nueva.
// El efecto neto es el delta (anterior - nueva) aunque el stock quede negativo: no se
// vuelve a validar suficiencia. Bloquea primero la venta y luego el material.
func (uc *SalesLedgerUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) error {
	if in.QuantitySold != nil && !in.QuantitySold.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		material, err := r.Materials.GetForUpdate(ctx, sale.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrMaterialNotFound
		}

		before := map[string]any{"quantity_sold": sale.QuantitySold, "price": sale.Price}
		oldQty := sale.QuantitySold
		if in.QuantitySold != nil {
			sale.QuantitySold = *in.QuantitySold
		}
		if in.Price != nil {
			sale.Price = *in.Price
		}

		total := inventory.Reapply(material.TotalQuantity, oldQty, sale.QuantitySold)
		if err := r.Materials.UpdateTotalQuantity(ctx, material.ID, total); err != nil {
			return err
		}
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionUpdate, entity.TableSales, sale.ID, map[string]any{
			"before": before,
			"after":  map[string]any{"quantity_sold": sale.QuantitySold, "price": sale.Price},
		})
	})
}

// DeleteSale devuelve la cantidad vendida al material y elimina la venta.
// Si el material ya no existe la venta se elimina igual y el snapshot lo indica.
func (uc *SalesLedgerUseCase) DeleteSale(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		material, err := r.Materials.GetForUpdate(ctx, sale.MaterialID)
		if err != nil {
			return err
		}
		restored := false
		if material != nil {
			if err := r.Materials.UpdateTotalQuantity(ctx, material.ID,
				inventory.Restore(material.TotalQuantity, sale.QuantitySold)); err != nil {
				return err
			}
			restored = true
		}
		if err := r.Sales.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionDelete, entity.TableSales, id, map[string]any{
			"deleted_sale": map[string]any{
				"material_id":    sale.MaterialID,
				"customer_id":    sale.CustomerID,
				"quantity_sold":  sale.QuantitySold,
				"price":          sale.Price,
				"date":           sale.Date,
				"stock_restored": restored,
			},
		})
	})
}

// Get obtiene una venta con nombres resueltos.
func (uc *SalesLedgerUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	row, err := uc.saleRepo.GetRow(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrSaleNotFound
	}
	resp := toSaleResponse(*row)
	return &resp, nil
}

// List lista las ventas. El cliente se muestra como "Walk-in Customer" si no hay referencia.
func (uc *SalesLedgerUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	rows, err := uc.saleRepo.ListRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSaleResponse(row))
	}
	return out, nil
}

func toSaleResponse(row repository.SaleRow) dto.SaleResponse {
	customer := entity.WalkInCustomer
	if row.CustomerName != nil {
		customer = *row.CustomerName
	}
	material := entity.DeletedMaterial
	if row.MaterialName != nil {
		material = *row.MaterialName
	}
	return dto.SaleResponse{
		ID:           row.Sale.ID,
		MaterialID:   row.Sale.MaterialID,
		Material:     material,
		CustomerID:   row.Sale.CustomerID,
		Customer:     customer,
		QuantitySold: row.Sale.QuantitySold,
		Price:        row.Sale.Price,
		Date:         row.Sale.Date,
	}
}

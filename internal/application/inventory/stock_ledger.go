package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockLedgerUseCase administra materiales y sus rollos. Cada mutación corre en una
// transacción junto con su entrada de auditoría.
type StockLedgerUseCase struct {
	txRunner     ports.TxRunner
	materialRepo repository.MaterialRepository
	rollRepo     repository.RollRepository
	recorder     *audit.Recorder
	now          func() time.Time
}

// NewStockLedgerUseCase construye el caso de uso. Los repositorios se usan solo para lecturas.
func NewStockLedgerUseCase(
	txRunner ports.TxRunner,
	materialRepo repository.MaterialRepository,
	rollRepo repository.RollRepository,
	recorder *audit.Recorder,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		rollRepo:     rollRepo,
		recorder:     recorder,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RegisterMaterial crea un material con TotalQuantity = 0.
// Devuelve domain.ErrDuplicateMaterial si ya existe (name, type, supplier).
func (uc *StockLedgerUseCase) RegisterMaterial(ctx context.Context, in dto.RegisterMaterialRequest) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Supplier = strings.TrimSpace(in.Supplier)
	if in.Name == "" || in.Supplier == "" || !entity.ValidMaterialType(in.Type) {
		return "", domain.ErrInvalidInput
	}

	now := uc.now()
	material := &entity.Material{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Type:          in.Type,
		Colour:        in.Colour,
		Supplier:      in.Supplier,
		TotalQuantity: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		existing, err := r.Materials.FindByKey(ctx, in.Name, in.Type, in.Supplier)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateMaterial
		}
		// El índice único cubre la carrera entre dos registros concurrentes.
		if err := r.Materials.Create(ctx, material); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionAdd, entity.TableMaterials, material.ID, in)
	})
	if err != nil {
		return "", err
	}
	return material.ID, nil
}

// AddRolls registra un lote de rollos para un material existente.
// No modifica TotalQuantity: los rollos son registros físicos, no stock vendible.
func (uc *StockLedgerUseCase) AddRolls(ctx context.Context, in dto.AddRollsRequest) (*dto.AddRollsResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !entity.ValidMaterialType(in.Type) || len(in.Quantities) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, q := range in.Quantities {
		if !q.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	var out *dto.AddRollsResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var material *entity.Material
		var err error
		if in.Supplier != nil {
			material, err = r.Materials.FindByKey(ctx, in.Name, in.Type, strings.TrimSpace(*in.Supplier))
		} else {
			material, err = r.Materials.FindByNameAndType(ctx, in.Name, in.Type)
		}
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrMaterialNotFound
		}

		now := uc.now()
		rolls := make([]*entity.Roll, 0, len(in.Quantities))
		ids := make([]string, 0, len(in.Quantities))
		for _, q := range in.Quantities {
			roll := &entity.Roll{
				ID:         uuid.New().String(),
				MaterialID: material.ID,
				Quantity:   q,
				CreatedAt:  now,
			}
			rolls = append(rolls, roll)
			ids = append(ids, roll.ID)
		}
		if err := r.Rolls.CreateBatch(ctx, rolls); err != nil {
			return err
		}
		// Una sola entrada para todo el lote; record_id es el material.
		if err := uc.recorder.Record(ctx, r.Logs, entity.ActionAdd, entity.TableMaterialRolls, material.ID,
			map[string]any{"added_rolls": in.Quantities}); err != nil {
			return err
		}
		out = &dto.AddRollsResponse{
			Message:    "rollos agregados",
			MaterialID: material.ID,
			RollIDs:    ids,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustStock suma delta al contador vendible del material (ingreso o baja) y lo audita.
// No concilia contra los rollos.
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, id string, in dto.AdjustStockRequest) (decimal.Decimal, error) {
	if id == "" || in.Delta.IsZero() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	var total decimal.Decimal
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		material, err := r.Materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrMaterialNotFound
		}
		before := material.TotalQuantity
		total = before.Add(in.Delta)
		if err := r.Materials.UpdateTotalQuantity(ctx, id, total); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionUpdate, entity.TableMaterials, id, map[string]any{
			"before": map[string]any{"total_quantity": before},
			"after":  map[string]any{"total_quantity": total},
			"reason": in.Reason,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// DeleteMaterial elimina todos los rollos del material y luego el material.
func (uc *StockLedgerUseCase) DeleteMaterial(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		material, err := r.Materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrMaterialNotFound
		}
		if _, err := r.Rolls.DeleteByMaterial(ctx, id); err != nil {
			return err
		}
		if err := r.Materials.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionDelete, entity.TableMaterials, id,
			map[string]any{"deleted_material": material.Name})
	})
}

// UpdateRoll cambia la cantidad de un rollo.
func (uc *StockLedgerUseCase) UpdateRoll(ctx context.Context, id string, in dto.UpdateRollRequest) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		roll, err := r.Rolls.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if roll == nil {
			return domain.ErrRollNotFound
		}
		if err := r.Rolls.UpdateQuantity(ctx, id, in.Quantity); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionUpdate, entity.TableMaterialRolls, id, map[string]any{
			"before": map[string]any{"quantity": roll.Quantity},
			"after":  map[string]any{"quantity": in.Quantity},
		})
	})
}

// DeleteRoll elimina un rollo.
func (uc *StockLedgerUseCase) DeleteRoll(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		roll, err := r.Rolls.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if roll == nil {
			return domain.ErrRollNotFound
		}
		if err := r.Rolls.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionDelete, entity.TableMaterialRolls, id, map[string]any{
			"deleted_roll": map[string]any{"material_id": roll.MaterialID, "quantity": roll.Quantity},
		})
	})
}

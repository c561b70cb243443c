package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	dominv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// Get obtiene un material con sus rollos.
func (uc *StockLedgerUseCase) Get(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}
	rolls, err := uc.rollRepo.ListByMaterialIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	resp := toMaterialResponse(material, rolls)
	return &resp, nil
}

// List devuelve todos los materiales con sus rollos (dos consultas, sin navegación implícita).
func (uc *StockLedgerUseCase) List(ctx context.Context) ([]dto.MaterialResponse, error) {
	materials, err := uc.materialRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	if len(materials) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	rolls, err := uc.rollRepo.ListByMaterialIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byMaterial := make(map[string][]*entity.Roll, len(materials))
	for _, r := range rolls {
		byMaterial[r.MaterialID] = append(byMaterial[r.MaterialID], r)
	}
	for _, m := range materials {
		out = append(out, toMaterialResponse(m, byMaterial[m.ID]))
	}
	return out, nil
}

func toMaterialResponse(m *entity.Material, rolls []*entity.Roll) dto.MaterialResponse {
	resp := dto.MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Colour:        m.Colour,
		Supplier:      m.Supplier,
		TotalQuantity: m.TotalQuantity,
		RollsTotal:    dominv.SumRolls(rolls),
		Rolls:         make([]dto.RollResponse, 0, len(rolls)),
	}
	for _, r := range rolls {
		resp.Rolls = append(resp.Rolls, dto.RollResponse{
			ID:        r.ID,
			Quantity:  r.Quantity,
			DateAdded: r.CreatedAt,
		})
	}
	return resp
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMaterialRequest body para POST /api/materials.
// Type: "enli" | "ensiz".
type RegisterMaterialRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Colour   *string `json:"colour,omitempty"`
	Supplier string  `json:"supplier"`
}

// AddRollsRequest body para POST /api/rolls. Supplier es opcional: si se omite
// se toma el material más antiguo con ese nombre y tipo.
type AddRollsRequest struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Supplier   *string           `json:"supplier,omitempty"`
	Quantities []decimal.Decimal `json:"quantities"`
}

// AddRollsResponse confirmación del lote de rollos.
type AddRollsResponse struct {
	Message    string   `json:"message"`
	MaterialID string   `json:"material_id"`
	RollIDs    []string `json:"roll_ids"`
}

// UpdateRollRequest body para PUT /api/rolls/:id.
type UpdateRollRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// AdjustStockRequest body para POST /api/materials/:id/stock.
// Delta positivo = ingreso al stock vendible, negativo = baja.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason,omitempty"`
}

// RollResponse rollo dentro de un material.
type RollResponse struct {
	ID        string          `json:"id"`
	Quantity  decimal.Decimal `json:"quantity"`
	DateAdded time.Time       `json:"date_added"`
}

// MaterialResponse material con sus rollos anidados.
// RollsTotal es informativo; el stock vendible es TotalQuantity.
type MaterialResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Colour        *string         `json:"colour"`
	Supplier      string          `json:"supplier"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	RollsTotal    decimal.Decimal `json:"rolls_total"`
	Rolls         []RollResponse  `json:"rolls"`
}

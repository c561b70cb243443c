package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest body para POST /api/sales.
// CustomerID nil = venta de mostrador. AmountDue solo aplica con cliente y se suma a su deuda.
type RecordSaleRequest struct {
	MaterialID   string           `json:"material_id"`
	CustomerID   *string          `json:"customer_id,omitempty"`
	QuantitySold decimal.Decimal  `json:"quantity_sold"`
	Price        decimal.Decimal  `json:"price"`
	AmountDue    *decimal.Decimal `json:"amount_due,omitempty"`
}

// UpdateSaleRequest body para PUT /api/sales/:id.
type UpdateSaleRequest struct {
	QuantitySold *decimal.Decimal `json:"quantity_sold,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
}

// SaleResponse venta con nombres resueltos.
type SaleResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	Material     string          `json:"material"`
	CustomerID   *string         `json:"customer_id"`
	Customer     string          `json:"customer"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Price        decimal.Decimal `json:"price"`
	Date         time.Time       `json:"date"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInCustomer es el nombre mostrado cuando una venta no tiene cliente (o el cliente fue eliminado).
const WalkInCustomer = "Walk-in Customer"

// DeletedMaterial es el nombre mostrado cuando el material de una venta ya no existe.
const DeletedMaterial = "Deleted Material"

// Sale representa una venta contra el stock de un material.
// CustomerID nil = venta de mostrador (walk-in).
type Sale struct {
	ID           string
	MaterialID   string
	CustomerID   *string
	QuantitySold decimal.Decimal
	Price        decimal.Decimal
	Date         time.Time
}

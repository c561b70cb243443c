package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roll es un lote físico agregado a un material. Se elimina junto con su material.
type Roll struct {
	ID         string
	MaterialID string
	Quantity   decimal.Decimal
	CreatedAt  time.Time
}

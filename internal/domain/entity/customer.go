package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente. Debt solo lo ajusta el ledger de ventas.
type Customer struct {
	ID        string
	Name      string
	Contact   string
	Location  string
	Debt      decimal.Decimal // saldo pendiente, con signo
	CreatedAt time.Time
	UpdatedAt time.Time
}

package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CanSell indica si el stock disponible cubre la cantidad solicitada.
func CanSell(available, requested decimal.Decimal) bool {
	return available.GreaterThanOrEqual(requested)
}

// Deduct aplica el efecto de una venta nueva sobre el contador vendible.
func Deduct(total, quantity decimal.Decimal) decimal.Decimal {
	return total.Sub(quantity)
}

// Reapply revierte la cantidad anterior de una venta y aplica la nueva.
// NuevoTotal = Total + CantAnterior - CantNueva. No vuelve a validar suficiencia.
func Reapply(total, oldQuantity, newQuantity decimal.Decimal) decimal.Decimal {
	return total.Add(oldQuantity).Sub(newQuantity)
}

// Restore devuelve al contador la cantidad de una venta eliminada.
func Restore(total, quantity decimal.Decimal) decimal.Decimal {
	return total.Add(quantity)
}

// SumRolls suma las cantidades de los rollos. Es informativo: TotalQuantity no se deriva de aquí.
func SumRolls(rolls []*entity.Roll) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rolls {
		sum = sum.Add(r.Quantity)
	}
	return sum
}

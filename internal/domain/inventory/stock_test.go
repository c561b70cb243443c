package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCanSell(t *testing.T) {
	assert.True(t, inventory.CanSell(d("100"), d("100")), "vender todo el stock es válido")
	assert.True(t, inventory.CanSell(d("100"), d("30.5")))
	assert.False(t, inventory.CanSell(d("10"), d("10.01")))
	assert.False(t, inventory.CanSell(d("-5"), d("1")), "stock negativo nunca alcanza")
}

func TestSaleLifecycleIsStockNeutral(t *testing.T) {
	start := d("100")
	total := inventory.Deduct(start, d("30"))
	assert.True(t, total.Equal(d("70")))

	quantities := []string{"50", "12.25", "200", "1"}
	current := d("30")
	for _, q := range quantities {
		total = inventory.Reapply(total, current, d(q))
		current = d(q)
	}
	total = inventory.Restore(total, current)
	assert.True(t, total.Equal(start), "crear → N actualizaciones → borrar debe dejar el stock igual, obtuvo %s", total)
}

func TestReapplyAllowsNegativeStock(t *testing.T) {
	total := inventory.Reapply(d("10"), d("5"), d("40"))
	assert.True(t, total.Equal(d("-25")))
}

func TestSumRolls(t *testing.T) {
	rolls := []*entity.Roll{{Quantity: d("12.5")}, {Quantity: d("7.5")}, {Quantity: d("30")}}
	assert.True(t, inventory.SumRolls(rolls).Equal(d("50")))
	assert.True(t, inventory.SumRolls(nil).IsZero())
}

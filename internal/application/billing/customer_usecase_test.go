package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestCustomer_CrudAuditado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	name := "Ayşe Yılmaz"
	location := "Bursa"
	updated, err := f.customers.Update(ctx, f.customerID, dto.UpdateCustomerRequest{Name: &name, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "555-0101", updated.Contact, "los campos omitidos se conservan")
	assert.Equal(t, location, updated.Location)

	list, err := f.customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.customers.Delete(ctx, f.customerID))
	_, err = f.customers.GetByID(ctx, f.customerID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	logs := f.logs(t)
	require.GreaterOrEqual(t, len(logs), 3)
	assert.Equal(t, entity.ActionDelete, logs[0].ActionType)
	assert.Equal(t, entity.ActionUpdate, logs[1].ActionType)
	assert.Equal(t, entity.ActionAdd, logs[2].ActionType)
	for _, l := range logs[:3] {
		assert.Equal(t, entity.TableCustomers, l.TableName)
		assert.Equal(t, f.customerID, l.RecordID)
	}
	assert.JSONEq(t, `{"deleted_customer":{"name":"Ayşe Yılmaz","contact":"555-0101"}}`, string(logs[0].Changes))
}

func TestCustomer_Errores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.customers.Create(ctx, dto.CreateCustomerRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	blank := ""
	_, err = f.customers.Update(ctx, f.customerID, dto.UpdateCustomerRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	name := "X"
	_, err = f.customers.Update(ctx, "no-existe", dto.UpdateCustomerRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, f.customers.Delete(ctx, "no-existe"), domain.ErrCustomerNotFound)
}

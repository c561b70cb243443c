package billing

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

// CustomerUseCase casos de uso para clientes. La deuda solo la modifica SalesLedgerUseCase.
type CustomerUseCase struct {
	txRunner ports.TxRunner
	repo     repository.CustomerRepository
	recorder *audit.Recorder
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(txRunner ports.TxRunner, repo repository.CustomerRepository, recorder *audit.Recorder) *CustomerUseCase {
	return &CustomerUseCase{txRunner: txRunner, repo: repo, recorder: recorder}
}

// Create crea un nuevo cliente con deuda cero.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Location:  in.Location,
		Debt:      decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.Create(ctx, customer); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionAdd, entity.TableCustomers, customer.ID, in)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update modifica nombre, contacto o ubicación.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.CustomerResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		customer, err := r.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}
		before := map[string]any{"name": customer.Name, "contact": customer.Contact, "debt": customer.Debt}
		if in.Name != nil {
			customer.Name = strings.TrimSpace(*in.Name)
		}
		if in.Contact != nil {
			customer.Contact = *in.Contact
		}
		if in.Location != nil {
			customer.Location = *in.Location
		}
		customer.UpdatedAt = time.Now().UTC()
		if err := r.Customers.Update(ctx, customer); err != nil {
			return err
		}
		if err := uc.recorder.Record(ctx, r.Logs, entity.ActionUpdate, entity.TableCustomers, id,
			map[string]any{"before": before, "after": in}); err != nil {
			return err
		}
		out = toCustomerResponse(customer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un cliente. No verifica ventas históricas que lo referencian:
// esas ventas se muestran luego como "Walk-in Customer".
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		customer, err := r.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}
		if err := r.Customers.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.Logs, entity.ActionDelete, entity.TableCustomers, id, map[string]any{
			"deleted_customer": map[string]any{"name": customer.Name, "contact": customer.Contact},
		})
	})
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista todos los clientes.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Contact:  c.Contact,
		Location: c.Location,
		Debt:     c.Debt,
	}
}

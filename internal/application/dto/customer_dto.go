package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Location string `json:"location,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id. Solo se aplican los campos presentes.
type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty"`
	Contact  *string `json:"contact,omitempty"`
	Location *string `json:"location,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Contact  string          `json:"contact"`
	Location string          `json:"location,omitempty"`
	Debt     decimal.Decimal `json:"debt"`
}

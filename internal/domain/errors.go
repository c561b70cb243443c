package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Errores del ledger de inventario.
	ErrDuplicateMaterial = errors.New("el material ya existe para ese nombre, tipo y proveedor")
	ErrMaterialNotFound  = errors.New("material no encontrado")
	ErrRollNotFound      = errors.New("rollo no encontrado")
	ErrCustomerNotFound  = errors.New("cliente no encontrado")
	ErrSaleNotFound      = errors.New("venta no encontrada")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStorageFailure    = errors.New("falla de almacenamiento")
)

// IsNotFound indica si err corresponde a cualquier recurso inexistente.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMaterialNotFound) ||
		errors.Is(err, ErrRollNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrSaleNotFound)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de material (ancho de la tela).
const (
	MaterialTypeEnli  = "enli"  // con ancho
	MaterialTypeEnsiz = "ensiz" // sin ancho
)

// ValidMaterialType indica si t pertenece a la enumeración fija de tipos.
func ValidMaterialType(t string) bool {
	return t == MaterialTypeEnli || t == MaterialTypeEnsiz
}

// Material representa una categoría de stock identificada por (Name, Type, Supplier).
// TotalQuantity es el contador vendible; NO se deriva de la suma de sus rollos.
type Material struct {
	ID            string
	Name          string
	Type          string
	Colour        *string
	Supplier      string
	TotalQuantity decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

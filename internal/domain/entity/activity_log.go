package entity

import (
	"encoding/json"
	"time"
)

// Tipos de acción registrados en la bitácora.
const (
	ActionAdd    = "ADD"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionSale   = "SALE"
)

// Tablas auditadas.
const (
	TableMaterials     = "materials"
	TableMaterialRolls = "material_rolls"
	TableCustomers     = "customers"
	TableSales         = "sales"
)

// ActivityLog es una entrada inmutable de la bitácora de auditoría.
// Seq lo asigna el almacenamiento y ordena las entradas aunque CreatedAt coincida.
type ActivityLog struct {
	ID         string
	Seq        int64
	ActionType string
	TableName  string
	RecordID   string
	Changes    json.RawMessage
	Actor      string
	CreatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de inventario.
const (
	BatchStatusActive   = "active"
	BatchStatusDepleted = "depleted"
	BatchStatusExpired  = "expired"
)

// InventoryBatch lote de una materia prima, para trazabilidad de vencimientos.
type InventoryBatch struct {
	ID          string
	ItemID      string
	ItemName    string // nombre del ítem (join), para mensajes
	BatchNumber string
	Quantity    decimal.Decimal
	ExpiryDate  *time.Time
	Status      string
	CreatedAt   time.Time
}

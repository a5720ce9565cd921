package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa una materia prima con su stock actual.
// Quantity es la única fuente de verdad del stock disponible; solo la muta
// la operación de descuento del libro de stock (o un ajuste administrativo).
type InventoryItem struct {
	ID           string
	Name         string
	Quantity     decimal.Decimal // nunca negativa
	Unit         string          // kg, g, L, ml, unidad...
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	ReorderLevel decimal.Decimal
	SupplierID   string // opcional
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

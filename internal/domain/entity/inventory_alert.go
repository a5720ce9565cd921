package entity

import "time"

// Tipos de alerta de inventario.
const (
	AlertKindLowStock     = "low_stock"
	AlertKindOutOfStock   = "out_of_stock"
	AlertKindExpiringSoon = "expiring_soon"
)

// InventoryAlert alerta persistida sobre un ítem de inventario.
// Contrato de deduplicación: a lo sumo una alerta sin resolver por
// (ítem, tipo, clave) dentro de la ventana móvil de 24 horas.
type InventoryAlert struct {
	ID         string
	ItemID     string
	Kind       string
	Message    string
	DedupeKey  string // ítem para low/out; número de lote para expiring_soon
	Resolved   bool
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

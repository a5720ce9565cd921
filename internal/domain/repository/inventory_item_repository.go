package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// InventoryItemRepository puerto de consulta/actualización de materias primas.
// UpdateQuantity solo debe invocarse con la fila bloqueada (GetForUpdate)
// dentro de una transacción, para serializar descuentos concurrentes.
type InventoryItemRepository interface {
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.InventoryItem, error)
	UpdateQuantity(id string, quantity decimal.Decimal) error
	List(limit, offset int) ([]*entity.InventoryItem, error)

	// ListLowStock ítems con 0 < quantity <= reorder_level, ordenados por
	// severidad (quantity / reorder_level ascendente: más cerca de cero primero).
	ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListOutOfStock ítems con quantity <= 0.
	ListOutOfStock(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListAtOrBelowReorder ítems con quantity <= reorder_level (candidatos a reposición).
	ListAtOrBelowReorder(ctx context.Context) ([]*entity.InventoryItem, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, name, quantity, unit, min_stock, max_stock, reorder_level, supplier_id, created_at, updated_at`

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func (r *InventoryItemRepo) scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var supplierID *string
	err := row.Scan(
		&it.ID, &it.Name, &it.Quantity, &it.Unit,
		&it.MinStock, &it.MaxStock, &it.ReorderLevel,
		&supplierID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.SupplierID = derefStr(supplierID)
	return &it, nil
}

// GetByID obtiene un ítem por ID. Devuelve (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := r.scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
// Serializa descuentos concurrentes sobre el mismo ítem.
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	it, err := r.scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return it, nil
}

// UpdateQuantity fija la cantidad del ítem. Invocar con la fila ya bloqueada.
func (r *InventoryItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	query := `UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// List lista ítems ordenados por nombre.
func (r *InventoryItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(context.Background(), query, limit, offset)
}

// ListLowStock ítems con 0 < quantity <= reorder_level, más cerca de cero primero.
func (r *InventoryItemRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE quantity > 0 AND reorder_level > 0 AND quantity <= reorder_level
		ORDER BY quantity / reorder_level ASC`
	return r.list(ctx, query)
}

// ListOutOfStock ítems agotados (quantity <= 0).
func (r *InventoryItemRepo) ListOutOfStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE quantity <= 0
		ORDER BY name`
	return r.list(ctx, query)
}

// ListAtOrBelowReorder candidatos a reposición (quantity <= reorder_level).
func (r *InventoryItemRepo) ListAtOrBelowReorder(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE reorder_level > 0 AND quantity <= reorder_level
		ORDER BY name`
	return r.list(ctx, query)
}

func (r *InventoryItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		var supplierID *string
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Quantity, &it.Unit,
			&it.MinStock, &it.MaxStock, &it.ReorderLevel,
			&supplierID, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		it.SupplierID = derefStr(supplierID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

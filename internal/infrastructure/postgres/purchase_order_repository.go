package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera de la orden.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, order_number, supplier_id, order_date, expected_delivery, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.OrderNumber, po.SupplierID, po.OrderDate, po.ExpectedDelivery,
		po.Status, po.TotalAmount, po.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order number %s: %w", po.OrderNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateLine(line *entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, item_id, quantity, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.PurchaseOrderID, line.ItemID, line.Quantity, line.UnitCost, line.TotalCost,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order line: %w", err)
	}
	return nil
}

// UpdateTotal fija el total de la cabecera (suma de los totales de línea).
func (r *PurchaseOrderRepo) UpdateTotal(id string, total decimal.Decimal) error {
	query := `UPDATE purchase_orders SET total_amount = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("update purchase order total: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID. Devuelve (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, order_number, supplier_id, order_date, expected_delivery, status, total_amount, created_at
		FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.OrderNumber, &po.SupplierID, &po.OrderDate, &po.ExpectedDelivery,
		&po.Status, &po.TotalAmount, &po.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &po, nil
}

// GetLines líneas de la orden, en el orden de inserción.
func (r *PurchaseOrderRepo) GetLines(purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, purchase_order_id, item_id, quantity, unit_cost, total_cost
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ItemID, &l.Quantity, &l.UnitCost, &l.TotalCost); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

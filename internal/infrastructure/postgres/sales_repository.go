package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementación de SalesRepository sobre PostgreSQL (usable con pool o tx).
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// Create persiste la cabecera de la venta. Una referencia repetida devuelve
// ErrDuplicate (constraint único sobre reference).
func (r *SalesRepo) Create(txn *entity.SalesTransaction) error {
	query := `
		INSERT INTO sales_transactions (id, reference, total_amount, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.Reference, txn.TotalAmount, txn.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reference %s: %w", txn.Reference, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert sales transaction: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SalesRepo) CreateItem(item *entity.SaleLineItem) error {
	query := `
		INSERT INTO sales_transaction_items (id, transaction_id, product_id, product_name, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransactionID, item.ProductID, item.ProductName,
		item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale line item: %w", err)
	}
	return nil
}

// CountByDate número de ventas registradas en la fecha (zona local de la BD).
func (r *SalesRepo) CountByDate(date time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM sales_transactions WHERE created_at::date = $1::date`
	var count int
	if err := r.q.QueryRow(context.Background(), query, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sales by date: %w", err)
	}
	return count, nil
}

// GetByID obtiene la venta con sus líneas. Devuelve (nil, nil) si no existe.
func (r *SalesRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	query := `
		SELECT id, reference, total_amount, created_at
		FROM sales_transactions WHERE id = $1`
	var txn entity.SalesTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&txn.ID, &txn.Reference, &txn.TotalAmount, &txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales transaction: %w", err)
	}

	itemsQuery := `
		SELECT id, transaction_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sales_transaction_items WHERE transaction_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleLineItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		txn.Items = append(txn.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UsageByItemSince consumo agregado por materia prima desde la fecha dada:
// suma de (cantidad vendida × cantidad por unidad de la receta) uniendo
// líneas de venta con las recetas de sus productos.
func (r *SalesRepo) UsageByItemSince(ctx context.Context, since time.Time) ([]repository.ItemUsage, error) {
	query := `
		SELECT pr.inventory_item_id, SUM(sti.quantity * pr.quantity_per_unit) AS total_used
		FROM sales_transaction_items sti
		JOIN sales_transactions st ON st.id = sti.transaction_id
		JOIN product_recipes pr ON pr.product_id = sti.product_id
		WHERE st.created_at >= $1
		GROUP BY pr.inventory_item_id`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("usage by item: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemUsage
	for rows.Next() {
		var u repository.ItemUsage
		if err := rows.Scan(&u.ItemID, &u.TotalUsed); err != nil {
			return nil, fmt.Errorf("scan item usage: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo con estado active.
func (r *BatchRepo) Create(batch *entity.InventoryBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.Status == "" {
		batch.Status = entity.BatchStatusActive
	}
	query := `
		INSERT INTO inventory_batches (id, item_id, batch_number, quantity, expiry_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ItemID, batch.BatchNumber, batch.Quantity, batch.ExpiryDate, batch.Status, batch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// ListExpiringWithin lotes activos con cantidad positiva y vencimiento dentro
// de los próximos days días, del más próximo al más lejano.
func (r *BatchRepo) ListExpiringWithin(ctx context.Context, days int) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT b.id, b.item_id, ii.name, b.batch_number, b.quantity, b.expiry_date, b.status, b.created_at
		FROM inventory_batches b
		JOIN inventory_items ii ON ii.id = b.item_id
		WHERE b.status = 'active'
		  AND b.quantity > 0
		  AND b.expiry_date IS NOT NULL
		  AND b.expiry_date <= now() + make_interval(days => $1)
		ORDER BY b.expiry_date ASC`
	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryBatch
	for rows.Next() {
		var b entity.InventoryBatch
		if err := rows.Scan(&b.ID, &b.ItemID, &b.ItemName, &b.BatchNumber, &b.Quantity, &b.ExpiryDate, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// MarkExpired marca como expired los lotes activos cuya fecha de vencimiento
// ya pasó. Devuelve cuántos cambiaron.
func (r *BatchRepo) MarkExpired(ctx context.Context, asOf time.Time) (int, error) {
	query := `
		UPDATE inventory_batches
		SET status = 'expired'
		WHERE status = 'active' AND expiry_date IS NOT NULL AND expiry_date < $1`
	tag, err := r.q.Exec(ctx, query, asOf)
	if err != nil {
		return 0, fmt.Errorf("mark expired batches: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

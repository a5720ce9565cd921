package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// BatchRepository puerto de lotes de inventario (vencimientos).
type BatchRepository interface {
	Create(batch *entity.InventoryBatch) error
	// ListExpiringWithin lotes activos con quantity > 0 y fecha de vencimiento
	// dentro de los próximos days días, ordenados del más próximo al más lejano.
	ListExpiringWithin(ctx context.Context, days int) ([]*entity.InventoryBatch, error)
	// MarkExpired marca como expired los lotes activos ya vencidos a la fecha dada.
	MarkExpired(ctx context.Context, asOf time.Time) (int, error)
}

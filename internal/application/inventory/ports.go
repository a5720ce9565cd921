package inventory

import (
	"context"

	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// LedgerTxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de ítems atado a esa tx. Garantiza que el bloqueo de fila
// (SELECT FOR UPDATE) y la actualización de cantidad sean atómicos.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(itemRepo repository.InventoryItemRepository) error) error
}

// AlertTxRunner ejecuta el chequeo+inserción de alertas dentro de una
// transacción (advisory lock + ventana de deduplicación).
type AlertTxRunner interface {
	RunAlerts(ctx context.Context, fn func(alertRepo repository.AlertRepository) error) error
}

// PurchaseTxRunner ejecuta la creación de una orden de compra (cabecera,
// líneas y total) dentro de una sola transacción.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(poRepo repository.PurchaseOrderRepository) error) error
}

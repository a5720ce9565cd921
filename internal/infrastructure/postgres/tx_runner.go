package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/cafeteria-api/internal/application/sales"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de ventas e inventario.
var _ sales.SaleTxRunner = (*TxRunner)(nil)
var _ inventory.LedgerTxRunner = (*TxRunner)(nil)
var _ inventory.AlertTxRunner = (*TxRunner)(nil)
var _ inventory.PurchaseTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con los
// repositorios construidos sobre la tx. Commit si fn retorna nil, Rollback
// en cualquier otro caso.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale transacción para la unidad atómica de una venta (cabecera + líneas).
func (r *TxRunner) RunSale(ctx context.Context, fn func(salesRepo repository.SalesRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSalesRepository(q))
	})
}

// RunLedger transacción para un descuento de stock (bloqueo de fila + update).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(itemRepo repository.InventoryItemRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInventoryItemRepository(q))
	})
}

// RunAlerts transacción para el chequeo+inserción deduplicado de una alerta.
func (r *TxRunner) RunAlerts(ctx context.Context, fn func(alertRepo repository.AlertRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewAlertRepository(q))
	})
}

// RunPurchase transacción para crear una orden de compra completa.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(poRepo repository.PurchaseOrderRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewPurchaseOrderRepository(q))
	})
}

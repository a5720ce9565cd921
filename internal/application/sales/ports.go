package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de ventas atado a esa tx. Cubre la unidad atómica de la venta:
// generación de referencia, cabecera y líneas persisten juntas o ninguna.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(salesRepo repository.SalesRepository) error) error
}

// StockLedger puerto hacia el libro de stock. El descuento corre fuera de la
// transacción de la venta, en su propia unidad con bloqueo de fila: un fallo
// aquí se registra como error por ingrediente y no revierte la venta.
// Implementado por inventory.StockLedgerUseCase.
type StockLedger interface {
	Deduct(ctx context.Context, itemID string, qty decimal.Decimal) (applied, remaining decimal.Decimal, err error)
}

package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// StockLedgerUseCase es el único escritor de la cantidad en stock durante las
// ventas. Cada descuento corre en su propia transacción con bloqueo de fila
// (SELECT FOR UPDATE), de modo que dos ventas simultáneas sobre el mismo ítem
// se serializan y nunca dejan la cantidad en negativo.
//
// Política ante stock insuficiente: todo-o-nada. Si lo disponible es menor a
// lo solicitado no se descuenta nada y se devuelve ErrInsufficientStock; el
// coordinador de ventas lo registra como error por ingrediente sin anular la
// venta.
type StockLedgerUseCase struct {
	txRunner LedgerTxRunner
}

// NewStockLedgerUseCase construye el libro de stock.
func NewStockLedgerUseCase(txRunner LedgerTxRunner) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner}
}

// Deduct descuenta qty del ítem y devuelve lo aplicado y la cantidad restante.
func (uc *StockLedgerUseCase) Deduct(ctx context.Context, itemID string, qty decimal.Decimal) (applied, remaining decimal.Decimal, err error) {
	if itemID == "" || !qty.GreaterThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	err = uc.txRunner.RunLedger(ctx, func(itemRepo repository.InventoryItemRepository) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity.LessThan(qty) {
			return domain.ErrInsufficientStock
		}
		newQty := item.Quantity.Sub(qty)
		if err := itemRepo.UpdateQuantity(itemID, newQty); err != nil {
			return err
		}
		applied = qty
		remaining = newQty
		return nil
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return applied, remaining, nil
}

package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
)

// ReferenceSentinel valor de referencia que, como la cadena vacía, dispara la
// generación automática TXN<YYYYMMDD>-NNNN.
const ReferenceSentinel = "N/A"

// RecordSaleUseCase coordina el registro de una venta y el descuento del
// inventario consumido por cada línea según su receta.
//
// Transaccionalidad en dos niveles, a propósito: cabecera + líneas son una
// unidad atómica (la venta es el registro de verdad del ingreso); el
// descuento de stock es una unidad aparte, al mejor esfuerzo — un faltante de
// inventario es una alerta operativa, no una condición que bloquee la venta.
type RecordSaleUseCase struct {
	txRunner    SaleTxRunner
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	ledger      StockLedger
	log         *logger.Logger
}

// NewRecordSaleUseCase construye el coordinador.
func NewRecordSaleUseCase(
	txRunner SaleTxRunner,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	ledger StockLedger,
	log *logger.Logger,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		ledger:      ledger,
		log:         log,
	}
}

// RecordSale valida la venta, persiste cabecera y líneas en una transacción
// y luego descuenta los ingredientes línea por línea, acumulando descuentos
// aplicados y errores. Un fallo al persistir aborta la llamada; un fallo de
// descuento solo agrega una entrada en Errors.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Validar líneas y resolver productos antes de cualquier mutación.
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := productsByID[line.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[line.ProductID] = product
	}

	now := time.Now()
	txn := &entity.SalesTransaction{
		ID:          uuid.New().String(),
		Reference:   in.Reference,
		TotalAmount: in.TotalAmount,
		CreatedAt:   now,
	}

	// Unidad atómica: referencia + cabecera + líneas. La secuencia se calcula
	// dentro de la misma transacción para minimizar colisiones de referencia.
	err := uc.txRunner.RunSale(ctx, func(salesRepo repository.SalesRepository) error {
		if txn.Reference == "" || txn.Reference == ReferenceSentinel {
			count, err := salesRepo.CountByDate(now)
			if err != nil {
				return err
			}
			txn.Reference = fmt.Sprintf("TXN%s-%04d", now.Format("20060102"), count+1)
		}
		if err := salesRepo.Create(txn); err != nil {
			return err
		}
		for _, line := range in.Items {
			product := productsByID[line.ProductID]
			item := &entity.SaleLineItem{
				ID:            uuid.New().String(),
				TransactionID: txn.ID,
				ProductID:     line.ProductID,
				ProductName:   product.Name,
				Quantity:      line.Quantity,
				UnitPrice:     line.UnitPrice,
				Subtotal:      line.Quantity.Mul(line.UnitPrice),
			}
			if err := salesRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Descuento de inventario: unidad aparte, nunca revierte la venta.
	deductions, dedErrors := uc.deductForSale(ctx, in.Items, productsByID)

	return &dto.SaleResponse{
		TransactionID: txn.ID,
		Reference:     txn.Reference,
		TotalAmount:   txn.TotalAmount,
		Deductions:    deductions,
		Errors:        dedErrors,
	}, nil
}

// deductForSale resuelve la receta de cada línea y descuenta cada ingrediente
// (cantidad por unidad × cantidad vendida) a través del libro de stock.
func (uc *RecordSaleUseCase) deductForSale(
	ctx context.Context,
	lines []dto.SaleLineRequest,
	productsByID map[string]*entity.Product,
) ([]dto.DeductionEntryDTO, []dto.DeductionErrorDTO) {
	deductions := make([]dto.DeductionEntryDTO, 0)
	dedErrors := make([]dto.DeductionErrorDTO, 0)

	for _, line := range lines {
		ingredients, err := uc.recipeRepo.ListByProduct(line.ProductID)
		if err != nil {
			product := productsByID[line.ProductID]
			uc.log.Warn().Err(err).Str("product_id", line.ProductID).Msg("resolver receta")
			dedErrors = append(dedErrors, dto.DeductionErrorDTO{
				ProductID: line.ProductID,
				Requested: decimal.Zero,
				Reason:    fmt.Sprintf("receta de %s no disponible: %v", product.Name, err),
			})
			continue
		}
		for _, ing := range ingredients {
			required := ing.QuantityPerUnit.Mul(line.Quantity)
			applied, remaining, err := uc.ledger.Deduct(ctx, ing.InventoryItemID, required)
			if err != nil {
				uc.log.Warn().Err(err).
					Str("item_id", ing.InventoryItemID).
					Str("product_id", line.ProductID).
					Str("requested", required.String()).
					Msg("descuento de inventario fallido")
				dedErrors = append(dedErrors, dto.DeductionErrorDTO{
					ItemID:    ing.InventoryItemID,
					ItemName:  ing.ItemName,
					ProductID: line.ProductID,
					Requested: required,
					Reason:    err.Error(),
				})
				continue
			}
			uc.log.Debug().
				Str("item_id", ing.InventoryItemID).
				Str("applied", applied.String()).
				Str("remaining", remaining.String()).
				Msg("inventario descontado")
			deductions = append(deductions, dto.DeductionEntryDTO{
				ItemID:   ing.InventoryItemID,
				ItemName: ing.ItemName,
				Quantity: applied,
			})
		}
	}
	return deductions, dedErrors
}

package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// DeliveryLeadDays plazo de entrega esperado por defecto para una orden nueva.
const DeliveryLeadDays = 7

// PurchaseOrderUseCase crea órdenes de compra a partir de sugerencias
// aceptadas: cabecera, líneas y total en una sola transacción; cualquier
// fallo revierte la orden completa.
type PurchaseOrderUseCase struct {
	txRunner     PurchaseTxRunner
	supplierRepo repository.SupplierRepository
	poRepo       repository.PurchaseOrderRepository // lecturas fuera de transacción
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner PurchaseTxRunner,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txRunner: txRunner, supplierRepo: supplierRepo, poRepo: poRepo}
}

// CreateFromSuggestions crea la orden con número PO-<YYYYMMDD>-<6 hex> y
// entrega esperada a 7 días. El total de la cabecera se actualiza al final
// con la suma de los totales de línea, dentro de la misma transacción.
func (uc *PurchaseOrderUseCase) CreateFromSuggestions(
	ctx context.Context,
	supplierID string,
	items []dto.PurchaseOrderItemRequest,
) (*dto.PurchaseOrderResponse, error) {
	if supplierID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ItemID == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		OrderNumber:      generateOrderNumber(now),
		SupplierID:       supplierID,
		OrderDate:        now,
		ExpectedDelivery: now.AddDate(0, 0, DeliveryLeadDays),
		Status:           entity.PurchaseOrderStatusPending,
		TotalAmount:      decimal.Zero,
		CreatedAt:        now,
	}

	lines := make([]dto.PurchaseOrderLineDTO, 0, len(items))
	err = uc.txRunner.RunPurchase(ctx, func(poRepo repository.PurchaseOrderRepository) error {
		if err := poRepo.Create(po); err != nil {
			return err
		}
		total := decimal.Zero
		for _, it := range items {
			lineTotal := it.Quantity.Mul(it.UnitCost)
			line := &entity.PurchaseOrderLine{
				ID:              uuid.New().String(),
				PurchaseOrderID: po.ID,
				ItemID:          it.ItemID,
				Quantity:        it.Quantity,
				UnitCost:        it.UnitCost,
				TotalCost:       lineTotal,
			}
			if err := poRepo.CreateLine(line); err != nil {
				return err
			}
			total = total.Add(lineTotal)
			lines = append(lines, dto.PurchaseOrderLineDTO{
				ItemID:    it.ItemID,
				Quantity:  it.Quantity,
				UnitCost:  it.UnitCost,
				TotalCost: lineTotal,
			})
		}
		po.TotalAmount = total
		return poRepo.UpdateTotal(po.ID, total)
	})
	if err != nil {
		return nil, err
	}

	return &dto.PurchaseOrderResponse{
		ID:               po.ID,
		OrderNumber:      po.OrderNumber,
		SupplierID:       po.SupplierID,
		OrderDate:        po.OrderDate,
		ExpectedDelivery: po.ExpectedDelivery,
		Status:           po.Status,
		TotalAmount:      po.TotalAmount,
		Lines:            lines,
	}, nil
}

// GetByID obtiene la orden con sus líneas (para consulta y PDF).
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	if id == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if po == nil {
		return nil, nil, domain.ErrNotFound
	}
	poLines, err := uc.poRepo.GetLines(id)
	if err != nil {
		return nil, nil, err
	}
	return po, poLines, nil
}

// generateOrderNumber arma PO-<YYYYMMDD>-<sufijo> con 6 hex en mayúsculas
// tomados de un UUID nuevo.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "PO-" + now.Format("20060102") + "-" + suffix
}

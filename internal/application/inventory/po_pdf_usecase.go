package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// POLineForPDF línea de la orden enriquecida con nombre y unidad del ítem.
type POLineForPDF struct {
	ItemName  string
	Unit      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
}

// PurchaseOrderPDFGenerator puerto hacia el renderizador de PDF.
// Implementado por pdf.MarotoPOGenerator.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, po *entity.PurchaseOrder, supplier *entity.Supplier, lines []POLineForPDF) ([]byte, error)
}

// PurchaseOrderPDFUseCase arma la representación imprimible de una orden de
// compra para enviar al proveedor.
type PurchaseOrderPDFUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.InventoryItemRepository
	generator    PurchaseOrderPDFGenerator
}

// NewPurchaseOrderPDFUseCase construye el caso de uso.
func NewPurchaseOrderPDFUseCase(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.InventoryItemRepository,
	generator PurchaseOrderPDFGenerator,
) *PurchaseOrderPDFUseCase {
	return &PurchaseOrderPDFUseCase{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		generator:    generator,
	}
}

// Generate devuelve los bytes del PDF de la orden.
func (uc *PurchaseOrderPDFUseCase) Generate(ctx context.Context, poID string) ([]byte, error) {
	if poID == "" {
		return nil, domain.ErrInvalidInput
	}
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(po.SupplierID)
	if err != nil {
		return nil, err
	}
	rawLines, err := uc.poRepo.GetLines(poID)
	if err != nil {
		return nil, err
	}

	lines := make([]POLineForPDF, 0, len(rawLines))
	for _, l := range rawLines {
		name, unit := l.ItemID, ""
		if item, err := uc.itemRepo.GetByID(l.ItemID); err == nil && item != nil {
			name, unit = item.Name, item.Unit
		}
		lines = append(lines, POLineForPDF{
			ItemName:  name,
			Unit:      unit,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			TotalCost: l.TotalCost,
		})
	}
	return uc.generator.GeneratePurchaseOrderPDF(ctx, po, supplier, lines)
}

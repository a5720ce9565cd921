package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de órdenes de compra. Create, CreateLine y
// UpdateTotal se usan dentro de una misma transacción: la orden se persiste
// completa o no se persiste.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	CreateLine(line *entity.PurchaseOrderLine) error
	UpdateTotal(id string, total decimal.Decimal) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetLines(purchaseOrderID string) ([]*entity.PurchaseOrderLine, error)
}

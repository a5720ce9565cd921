package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea aceptada de una sugerencia de reposición.
type PurchaseOrderItemRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" validate:"required"`
	Items      []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderLineDTO línea de una orden de compra ya creada.
type PurchaseOrderLineDTO struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderResponse resultado de crear (o consultar) una orden de compra.
type PurchaseOrderResponse struct {
	ID               string                 `json:"id"`
	OrderNumber      string                 `json:"order_number"`
	SupplierID       string                 `json:"supplier_id"`
	OrderDate        time.Time              `json:"order_date"`
	ExpectedDelivery time.Time              `json:"expected_delivery"`
	Status           string                 `json:"status"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	Lines            []PurchaseOrderLineDTO `json:"lines,omitempty"`
}

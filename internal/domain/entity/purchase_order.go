package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderStatusPending   = "pending"
	PurchaseOrderStatusReceived  = "received"
	PurchaseOrderStatusCancelled = "cancelled"
)

// PurchaseOrder cabecera de una orden de compra a un proveedor.
// Total es la suma de los totales de sus líneas; se calcula al crear la orden.
type PurchaseOrder struct {
	ID               string
	OrderNumber      string // PO-<YYYYMMDD>-<sufijo hex de 6>
	SupplierID       string
	OrderDate        time.Time
	ExpectedDelivery time.Time
	Status           string
	TotalAmount      decimal.Decimal
	CreatedAt        time.Time
}

// PurchaseOrderLine línea de una orden de compra.
type PurchaseOrderLine struct {
	ID              string
	PurchaseOrderID string
	ItemID          string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal // Quantity * UnitCost
}

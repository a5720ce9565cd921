package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesTransaction representa una venta finalizada en caja. Se crea una sola
// vez, de forma atómica junto con sus líneas, y no se muta después.
type SalesTransaction struct {
	ID          string
	Reference   string // única, formato TXN<YYYYMMDD>-NNNN si se genera
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []*SaleLineItem
}

// SaleLineItem línea de una venta: producto, snapshot del nombre y cantidades.
type SaleLineItem struct {
	ID            string
	TransactionID string
	ProductID     string
	ProductName   string // snapshot al momento de la venta
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
}

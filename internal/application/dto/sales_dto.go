package dto

import "github.com/shopspring/decimal"

// SaleLineRequest línea del carrito al finalizar la venta.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RecordSaleRequest body para POST /api/sales. Reference vacía o "N/A"
// genera una referencia TXN<YYYYMMDD>-NNNN.
type RecordSaleRequest struct {
	Reference   string            `json:"reference"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
}

// DeductionEntryDTO descuento de stock aplicado por un ingrediente.
type DeductionEntryDTO struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// DeductionErrorDTO descuento fallido; la venta se registra igual.
type DeductionErrorDTO struct {
	ItemID    string          `json:"item_id,omitempty"`
	ItemName  string          `json:"item_name,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	Requested decimal.Decimal `json:"requested"`
	Reason    string          `json:"reason"`
}

// SaleResponse resultado de registrar una venta: identificadores más el
// resumen de descuentos de inventario (aplicados y fallidos).
type SaleResponse struct {
	TransactionID string              `json:"transaction_id"`
	Reference     string              `json:"reference"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Deductions    []DeductionEntryDTO `json:"deductions"`
	Errors        []DeductionErrorDTO `json:"errors"`
}

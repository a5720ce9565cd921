package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// InventoryItemDTO vista de una materia prima para listados.
type InventoryItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	SupplierID   string          `json:"supplier_id,omitempty"`
}

// FromInventoryItem convierte la entidad a DTO.
func FromInventoryItem(it *entity.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{
		ID:           it.ID,
		Name:         it.Name,
		Quantity:     it.Quantity,
		Unit:         it.Unit,
		MinStock:     it.MinStock,
		MaxStock:     it.MaxStock,
		ReorderLevel: it.ReorderLevel,
		SupplierID:   it.SupplierID,
	}
}

// ScanResponse resultado de una pasada del monitor de stock.
type ScanResponse struct {
	LowStock   []InventoryItemDTO `json:"low_stock"`
	OutOfStock []InventoryItemDTO `json:"out_of_stock"`
}

// BatchDTO lote con vencimiento.
type BatchDTO struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	ItemName    string          `json:"item_name,omitempty"`
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	Status      string          `json:"status"`
}

// CreateBatchRequest body para registrar un lote nuevo.
type CreateBatchRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	BatchNumber string          `json:"batch_number" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
}

package dto

import "github.com/shopspring/decimal"

// ReorderSuggestionDTO sugerencia de reposición para una materia prima bajo
// su punto de reorden. Nunca se persiste; se recalcula en cada consulta.
type ReorderSuggestionDTO struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	SuggestedQty      decimal.Decimal `json:"suggested_qty"`       // max(max_stock - stock, 7×consumo), múltiplo de 10
	AvgDailyUsage     decimal.Decimal `json:"avg_daily_usage"`     // consumo promedio últimos 30 días
	DaysUntilStockout decimal.Decimal `json:"days_until_stockout"` // 9999 = sin quiebre pronosticable
	UrgencyTier       int             `json:"urgency_tier"`        // 1–5, 5 = crítico
	UrgencyLabel      string          `json:"urgency_label"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	Reason            string          `json:"reason"`
}

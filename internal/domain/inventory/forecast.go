// Package inventory contiene la lógica pura de pronóstico de reposición:
// consumo promedio, días hasta quiebre de stock, cantidad sugerida y
// clasificación de urgencia. Sin dependencias de infraestructura.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockoutSentinel valor de DaysUntilStockout cuando no hay consumo reciente
// (sin quiebre pronosticable).
var StockoutSentinel = decimal.NewFromInt(9999)

// Etiquetas de urgencia, de menor a mayor.
const (
	UrgencyLow      = "LOW"
	UrgencyMedium   = "MEDIUM"
	UrgencyHigh     = "HIGH"
	UrgencyUrgent   = "URGENT"
	UrgencyCritical = "CRITICAL"
)

var (
	ten   = decimal.NewFromInt(10)
	seven = decimal.NewFromInt(7)
)

// AverageDailyUsage consumo promedio diario: total consumido en la ventana
// dividido por los días de la ventana. Cero si no hubo ventas.
func AverageDailyUsage(totalUsed decimal.Decimal, windowDays int) decimal.Decimal {
	if windowDays <= 0 || totalUsed.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalUsed.Div(decimal.NewFromInt(int64(windowDays)))
}

// DaysUntilStockout días estimados hasta quedar sin stock al ritmo de
// consumo actual. Devuelve StockoutSentinel cuando el consumo es cero.
func DaysUntilStockout(currentStock, avgDailyUsage decimal.Decimal) decimal.Decimal {
	if avgDailyUsage.LessThanOrEqual(decimal.Zero) {
		return StockoutSentinel
	}
	if currentStock.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return currentStock.Div(avgDailyUsage)
}

// SuggestedOrderQty cantidad sugerida de pedido: lo que falta para llegar al
// stock máximo, o una semana de consumo, lo que sea mayor; redondeado hacia
// arriba al múltiplo de 10 más cercano.
func SuggestedOrderQty(maxStock, currentStock, avgDailyUsage decimal.Decimal) decimal.Decimal {
	toMax := maxStock.Sub(currentStock)
	weekly := avgDailyUsage.Mul(seven)
	raw := toMax
	if weekly.GreaterThan(raw) {
		raw = weekly
	}
	if raw.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return RoundUpToTen(raw)
}

// RoundUpToTen redondea hacia arriba al múltiplo de 10 más cercano.
// Ej: 60 → 60, 14 → 20, 61 → 70.
func RoundUpToTen(qty decimal.Decimal) decimal.Decimal {
	q := qty.Div(ten).Ceil()
	return q.Mul(ten)
}

// ClassifyUrgency clasifica la urgencia de reposición en niveles 1–5.
// Precedencia: sin stock → 5 CRITICAL; quiebre en ≤2 días → 4 URGENT;
// ≤5 → 3 HIGH; ≤10 → 2 MEDIUM; resto → 1 LOW. La comparación cuenta días
// completos: 2.5 días de stock significa quiebre al segundo día (URGENT).
func ClassifyUrgency(currentStock, daysUntilStockout decimal.Decimal) (int, string) {
	days := daysUntilStockout.Floor()
	switch {
	case currentStock.LessThanOrEqual(decimal.Zero):
		return 5, UrgencyCritical
	case days.LessThanOrEqual(decimal.NewFromInt(2)):
		return 4, UrgencyUrgent
	case days.LessThanOrEqual(decimal.NewFromInt(5)):
		return 3, UrgencyHigh
	case days.LessThanOrEqual(decimal.NewFromInt(10)):
		return 2, UrgencyMedium
	default:
		return 1, UrgencyLow
	}
}

// BuildReason arma la explicación legible de la sugerencia, siguiendo el
// mismo orden de evaluación que ClassifyUrgency.
func BuildReason(itemName string, currentStock, avgDailyUsage, daysUntilStockout decimal.Decimal) string {
	switch {
	case currentStock.LessThanOrEqual(decimal.Zero):
		return fmt.Sprintf("%s está agotado: reponer de inmediato", itemName)
	case avgDailyUsage.GreaterThan(decimal.Zero) && daysUntilStockout.LessThanOrEqual(decimal.NewFromInt(10)):
		return fmt.Sprintf("%s se agota en ~%s días al ritmo actual", itemName, daysUntilStockout.Round(1).String())
	case avgDailyUsage.GreaterThan(decimal.Zero):
		return fmt.Sprintf("%s consume %s/día en promedio (últimos 30 días)", itemName, avgDailyUsage.Round(2).String())
	default:
		return fmt.Sprintf("%s está bajo el punto de reorden", itemName)
	}
}

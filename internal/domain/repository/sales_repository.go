package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// ItemUsage consumo total de una materia prima derivado de las ventas
// (cantidad vendida × cantidad por unidad de la receta) en un rango de fechas.
type ItemUsage struct {
	ItemID    string
	TotalUsed decimal.Decimal
}

// SalesRepository puerto de persistencia de ventas.
// Create y CreateItem se usan dentro de la transacción de la venta;
// CountByDate participa de la generación de referencia en el mismo scope.
type SalesRepository interface {
	Create(tx *entity.SalesTransaction) error
	CreateItem(item *entity.SaleLineItem) error
	// CountByDate número de ventas registradas en la fecha (zona local).
	CountByDate(date time.Time) (int, error)
	GetByID(id string) (*entity.SalesTransaction, error)

	// UsageByItemSince consumo agregado por materia prima desde la fecha dada,
	// uniendo líneas de venta con las recetas de sus productos.
	UsageByItemSince(ctx context.Context, since time.Time) ([]ItemUsage, error)
}

package entity

import "github.com/shopspring/decimal"

// RecipeIngredient vincula un producto vendible con una materia prima y la
// cantidad que consume cada unidad vendida. QuantityPerUnit siempre > 0.
type RecipeIngredient struct {
	ProductID       string
	InventoryItemID string
	ItemName        string // nombre del ítem (join), para mensajes y errores
	QuantityPerUnit decimal.Decimal
	Unit            string
	Notes           string
}

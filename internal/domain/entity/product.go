package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del menú (café, bebida, comida).
// Un producto puede tener cero o más ingredientes de receta asociados.
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

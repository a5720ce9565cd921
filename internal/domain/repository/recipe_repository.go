package repository

import "github.com/jhoicas/cafeteria-api/internal/domain/entity"

// RecipeRepository puerto de lectura de recetas (producto → ingredientes).
// Una lista vacía es válida: no todo producto consume inventario rastreado.
type RecipeRepository interface {
	ListByProduct(productID string) ([]*entity.RecipeIngredient, error)
}

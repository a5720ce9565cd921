package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByProduct ingredientes de la receta del producto, con el nombre del
// ítem resuelto para mensajes. Orden estable por nombre de ítem.
func (r *RecipeRepo) ListByProduct(productID string) ([]*entity.RecipeIngredient, error) {
	query := `
		SELECT pr.product_id, pr.inventory_item_id, ii.name, pr.quantity_per_unit, pr.unit, COALESCE(pr.notes, '')
		FROM product_recipes pr
		JOIN inventory_items ii ON ii.id = pr.inventory_item_id
		WHERE pr.product_id = $1
		ORDER BY ii.name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ProductID, &ing.InventoryItemID, &ing.ItemName, &ing.QuantityPerUnit, &ing.Unit, &ing.Notes); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}

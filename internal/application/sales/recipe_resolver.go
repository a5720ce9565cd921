package sales

import (
	"context"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// RecipeResolver resuelve la lista de materiales de un producto vendible:
// qué materias primas consume y en qué cantidad por unidad. Lectura pura.
type RecipeResolver struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
}

// NewRecipeResolver construye el resolvedor.
func NewRecipeResolver(productRepo repository.ProductRepository, recipeRepo repository.RecipeRepository) *RecipeResolver {
	return &RecipeResolver{productRepo: productRepo, recipeRepo: recipeRepo}
}

// ResolveRecipe devuelve los ingredientes del producto. Falla con ErrNotFound
// solo si el producto no existe; una lista vacía es válida (no todo producto
// consume inventario rastreado).
func (r *RecipeResolver) ResolveRecipe(ctx context.Context, productID string) ([]*entity.RecipeIngredient, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := r.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	ingredients, err := r.recipeRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

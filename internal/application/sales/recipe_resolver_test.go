package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/cafeteria-api/internal/application/sales"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

func TestResolveRecipe_DevuelveIngredientes(t *testing.T) {
	products, recipes := latteFixture()
	r := sales.NewRecipeResolver(products, recipes)

	ingredients, err := r.ResolveRecipe(context.Background(), "latte")

	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "cafe", ingredients[0].InventoryItemID)
	assert.True(t, ingredients[0].QuantityPerUnit.Equal(d("0.018")))
}

func TestResolveRecipe_ProductoSinRecetaEsListaVacia(t *testing.T) {
	products, _ := latteFixture()
	products.products["botella"] = products.products["latte"]
	r := sales.NewRecipeResolver(products, &fakeRecipeRepo{})

	ingredients, err := r.ResolveRecipe(context.Background(), "botella")

	require.NoError(t, err, "receta vacía no es un error")
	assert.Empty(t, ingredients)
}

func TestResolveRecipe_ProductoInexistente(t *testing.T) {
	products, recipes := latteFixture()
	r := sales.NewRecipeResolver(products, recipes)

	_, err := r.ResolveRecipe(context.Background(), "fantasma")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveRecipe_IDVacio(t *testing.T) {
	products, recipes := latteFixture()
	r := sales.NewRecipeResolver(products, recipes)

	_, err := r.ResolveRecipe(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

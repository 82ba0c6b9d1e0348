package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListSumsSharedIngredients(t *testing.T) {
	f := newFixture(t)
	svc := NewShoppingListService(f.db)

	second := createRecipe(t, f.db, f.author, "stew", f.tag, IngredientAmount{ID: f.salt.ID, Amount: 3})

	_, err := f.cart.Add(f.reader.ID, f.recipe.ID)
	require.NoError(t, err)
	_, err = f.cart.Add(f.reader.ID, second.ID)
	require.NoError(t, err)

	items, err := svc.ShoppingList(f.reader.ID)
	require.NoError(t, err)
	assert.Equal(t, "salt: 8 (g)\n", FormatShoppingList(items))
}

func TestShoppingListGroupsByNameAndUnit(t *testing.T) {
	f := newFixture(t)
	svc := NewShoppingListService(f.db)

	saltSpoons := createIngredient(t, f.db, "salt", "tsp")
	apples := createIngredient(t, f.db, "apples", "pcs")
	pie := createRecipe(t, f.db, f.author, "pie", f.tag,
		IngredientAmount{ID: apples.ID, Amount: 4},
		IngredientAmount{ID: saltSpoons.ID, Amount: 1},
		IngredientAmount{ID: f.salt.ID, Amount: 2},
	)

	_, err := f.cart.Add(f.reader.ID, f.recipe.ID)
	require.NoError(t, err)
	_, err = f.cart.Add(f.reader.ID, pie.ID)
	require.NoError(t, err)

	items, err := svc.ShoppingList(f.reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.ShoppingListItem{
		{Name: "apples", MeasurementUnit: "pcs", TotalAmount: 4},
		{Name: "salt", MeasurementUnit: "g", TotalAmount: 7},
		{Name: "salt", MeasurementUnit: "tsp", TotalAmount: 1},
	}, items)
}

func TestShoppingListIsAdditive(t *testing.T) {
	f := newFixture(t)
	svc := NewShoppingListService(f.db)
	pepper := createIngredient(t, f.db, "pepper", "g")
	stew := createRecipe(t, f.db, f.author, "stew", f.tag,
		IngredientAmount{ID: f.salt.ID, Amount: 11},
		IngredientAmount{ID: pepper.ID, Amount: 2},
	)

	totals := func() map[string]int64 {
		items, err := svc.ShoppingList(f.reader.ID)
		require.NoError(t, err)
		m := map[string]int64{}
		for _, item := range items {
			m[item.Name+"/"+item.MeasurementUnit] = item.TotalAmount
		}
		return m
	}

	_, err := f.cart.Add(f.reader.ID, f.recipe.ID)
	require.NoError(t, err)
	before := totals()

	_, err = f.cart.Add(f.reader.ID, stew.ID)
	require.NoError(t, err)
	after := totals()

	assert.Equal(t, before["salt/g"]+11, after["salt/g"])
	assert.Equal(t, before["pepper/g"]+2, after["pepper/g"])

	require.NoError(t, f.cart.Remove(f.reader.ID, stew.ID))
	assert.Equal(t, before, totals())
}

func TestShoppingListEmptyCart(t *testing.T) {
	f := newFixture(t)

	items, err := NewShoppingListService(f.db).ShoppingList(f.reader.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "", FormatShoppingList(items))
}

func TestShoppingListIgnoresOtherUsersCarts(t *testing.T) {
	f := newFixture(t)

	_, err := f.cart.Add(f.author.ID, f.recipe.ID)
	require.NoError(t, err)

	items, err := NewShoppingListService(f.db).ShoppingList(f.reader.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

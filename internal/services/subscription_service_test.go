package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	svc := NewSubscriptionService(f.db)

	view, err := svc.Subscribe(f.reader.ID, f.author.ID, NoRecipesLimit)
	require.NoError(t, err)
	assert.Equal(t, f.author.ID, view.ID)
	assert.True(t, view.IsSubscribed)
	assert.Equal(t, int64(1), view.RecipesCount)
	require.Len(t, view.Recipes, 1)
	assert.Equal(t, f.recipe.ID, view.Recipes[0].ID)

	_, err = svc.Subscribe(f.reader.ID, f.author.ID, NoRecipesLimit)
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	_, err = svc.Subscribe(f.reader.ID, 9999, NoRecipesLimit)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSubscribeToSelfIsRejectedForEveryUser(t *testing.T) {
	f := newFixture(t)
	svc := NewSubscriptionService(f.db)

	for _, id := range []uint{f.author.ID, f.reader.ID, 9999} {
		_, err := svc.Subscribe(id, id, NoRecipesLimit)
		assert.True(t, IsValidationError(err), "user %d", id)
	}
}

func TestUnsubscribe(t *testing.T) {
	f := newFixture(t)
	svc := NewSubscriptionService(f.db)

	err := svc.Unsubscribe(f.reader.ID, f.author.ID)
	assert.True(t, errors.Is(err, ErrNotPresent))

	_, err = svc.Subscribe(f.reader.ID, f.author.ID, NoRecipesLimit)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(f.reader.ID, f.author.ID))

	err = svc.Unsubscribe(f.reader.ID, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAuthorRecipesLimitKeepsNewest(t *testing.T) {
	f := newFixture(t)
	svc := NewSubscriptionService(f.db)

	for i := 1; i <= 4; i++ {
		createRecipe(t, f.db, f.author, fmt.Sprintf("dish-%d", i), f.tag, IngredientAmount{ID: f.salt.ID, Amount: i})
	}

	recipes, err := svc.AuthorRecipes(f.author.ID, 2)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "dish-4", recipes[0].Name)
	assert.Equal(t, "dish-3", recipes[1].Name)

	all, err := svc.AuthorRecipes(f.author.ID, NoRecipesLimit)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, "soup", all[4].Name)

	view, err := svc.Subscribe(f.reader.ID, f.author.ID, 2)
	require.NoError(t, err)
	assert.Len(t, view.Recipes, 2)
	assert.Equal(t, int64(5), view.RecipesCount)
}

func TestListSubscriptions(t *testing.T) {
	f := newFixture(t)
	svc := NewSubscriptionService(f.db)
	other := createUser(t, f.db, "baker")

	_, err := svc.Subscribe(f.reader.ID, f.author.ID, NoRecipesLimit)
	require.NoError(t, err)
	_, err = svc.Subscribe(f.reader.ID, other.ID, NoRecipesLimit)
	require.NoError(t, err)

	page, err := svc.ListSubscriptions(f.reader.ID, NoRecipesLimit, Pagination{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "author", page.Results[0].Username)
	assert.True(t, page.Results[0].IsSubscribed)

	page, err = svc.ListSubscriptions(f.reader.ID, 0, Pagination{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "baker", page.Results[0].Username)
	assert.Empty(t, page.Results[0].Recipes)

	page, err = svc.ListSubscriptions(f.author.ID, NoRecipesLimit, Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Count)
	assert.Empty(t, page.Results)
}

func TestSubscribeRejectsDeletedSubscriber(t *testing.T) {
	f := newFixture(t)
	svc := NewSubscriptionService(f.db)
	require.NoError(t, NewUserService(f.db).DeleteUser(f.reader.ID))

	_, err := svc.Subscribe(f.reader.ID, f.author.ID, NoRecipesLimit)
	assert.True(t, errors.Is(err, ErrNotFound))

	var count int64
	require.NoError(t, f.db.Model(&models.Subscription{}).Where("user_id = ?", f.reader.ID).Count(&count).Error)
	assert.Zero(t, count)

	err = f.db.Create(&models.Subscription{UserID: 9999, AuthorID: f.author.ID}).Error
	assert.Error(t, err)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://foodgram.example"

func TestShortLinkIssueAndResolve(t *testing.T) {
	f := newFixture(t)
	svc := NewShortLinkService(f.db, NewGormShortLinkStore(f.db), testBaseURL+"/", 8)
	ctx := context.Background()

	link, err := svc.GetLink(ctx, f.recipe.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, testBaseURL+"/s/"), link)
	token := strings.TrimPrefix(link, testBaseURL+"/s/")
	assert.Len(t, token, 8)

	again, err := svc.GetLink(ctx, f.recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, link, again, "a recipe keeps its token")

	target, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/recipes/%d/", testBaseURL, f.recipe.ID), target)
}

func TestShortLinkUnknownToken(t *testing.T) {
	f := newFixture(t)
	svc := NewShortLinkService(f.db, NewGormShortLinkStore(f.db), testBaseURL, 0)

	_, err := svc.Resolve(context.Background(), "abc123")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.EqualError(t, err, "short link not found")
}

func TestShortLinkMissingRecipe(t *testing.T) {
	f := newFixture(t)
	svc := NewShortLinkService(f.db, NewGormShortLinkStore(f.db), testBaseURL, 0)

	_, err := svc.GetLink(context.Background(), 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestShortLinkRetriesOnTokenCollision(t *testing.T) {
	f := newFixture(t)
	second := createRecipe(t, f.db, f.author, "stew", f.tag, IngredientAmount{ID: f.salt.ID, Amount: 1})
	ctx := context.Background()

	tokens := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	svc := NewShortLinkService(f.db, NewGormShortLinkStore(f.db), testBaseURL, 6).(*shortLinkService)
	svc.newToken = func(int) (string, error) {
		token := tokens[0]
		tokens = tokens[1:]
		return token, nil
	}

	first, err := svc.GetLink(ctx, f.recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/s/AAAAAA", first)

	link, err := svc.GetLink(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/s/BBBBBB", link)
}

func TestShortLinkGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newFixture(t)
	second := createRecipe(t, f.db, f.author, "stew", f.tag, IngredientAmount{ID: f.salt.ID, Amount: 1})
	ctx := context.Background()

	svc := NewShortLinkService(f.db, NewGormShortLinkStore(f.db), testBaseURL, 6).(*shortLinkService)
	calls := 0
	svc.newToken = func(int) (string, error) {
		calls++
		return "SAME00", nil
	}

	_, err := svc.GetLink(ctx, f.recipe.ID)
	require.NoError(t, err)

	calls = 0
	_, err = svc.GetLink(ctx, second.ID)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, maxTokenAttempts, calls)
}

func TestRandomToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token, err := randomToken(12)
		require.NoError(t, err)
		assert.Len(t, token, 12)
		for _, r := range token {
			assert.True(t, strings.ContainsRune(tokenAlphabet, r))
		}
		seen[token] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://x.io/recipes/3/", publicURL("https://x.io/api/recipes/3/"))
	assert.Equal(t, "https://x.io/apiary/", publicURL("https://x.io/apiary/"))
}

func TestRedisShortLinkStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err())

	recipeID := uint(time.Now().UnixNano() % 1_000_000_000)
	token := fmt.Sprintf("t%d", recipeID)
	t.Cleanup(func() {
		rdb.Del(context.Background(), fmt.Sprintf(redisTokenKey, token), fmt.Sprintf(redisRecipeKey, recipeID))
	})

	store := NewRedisShortLinkStore(rdb)

	_, found, err := store.FindByRecipe(ctx, recipeID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, token, recipeID, "https://x.io/api/recipes/1/"))
	assert.ErrorIs(t, store.Save(ctx, token, recipeID+1, "https://x.io/api/recipes/2/"), errLinkConflict)

	got, found, err := store.FindByRecipe(ctx, recipeID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, token, got)

	target, found, err := store.Target(ctx, token)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://x.io/api/recipes/1/", target)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisTokenKey  = "shortlink:token:%s"
	redisRecipeKey = "shortlink:recipe:%d"
)

type redisShortLinkStore struct {
	rdb redis.Cmdable
}

// NewRedisShortLinkStore keeps short links in redis under shortlink:token:* and shortlink:recipe:* keys
func NewRedisShortLinkStore(rdb redis.Cmdable) ShortLinkStore {
	return &redisShortLinkStore{rdb: rdb}
}

func (s *redisShortLinkStore) FindByRecipe(ctx context.Context, recipeID uint) (string, bool, error) {
	token, err := s.rdb.Get(ctx, fmt.Sprintf(redisRecipeKey, recipeID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (s *redisShortLinkStore) Save(ctx context.Context, token string, recipeID uint, target string) error {
	tokenKey := fmt.Sprintf(redisTokenKey, token)
	ok, err := s.rdb.SetNX(ctx, tokenKey, target, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errLinkConflict
	}

	ok, err = s.rdb.SetNX(ctx, fmt.Sprintf(redisRecipeKey, recipeID), token, 0).Result()
	if err != nil || !ok {
		// Release the token so it does not point at a recipe that links elsewhere
		if delErr := s.rdb.Del(ctx, tokenKey).Err(); delErr != nil {
			log.WithError(delErr).WithField("token", token).Warn("Failed to release short link token")
		}
		if err != nil {
			return err
		}
		return errLinkConflict
	}
	return nil
}

func (s *redisShortLinkStore) Target(ctx context.Context, token string) (string, bool, error) {
	target, err := s.rdb.Get(ctx, fmt.Sprintf(redisTokenKey, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return target, true, nil
}


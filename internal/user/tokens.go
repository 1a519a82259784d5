package user

import (
	"context"
	"time"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/redis/go-redis/v9"
)

const resetTokenTTL = 15 * time.Minute

// TokenStore issues and redeems single-use password reset tokens.
type TokenStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Consume(ctx context.Context, token string) (string, error)
}

type RedisTokenStore struct {
	redis *redis.Client
}

func NewRedisTokenStore(redisClient *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{redis: redisClient}
}

func (s *RedisTokenStore) Issue(ctx context.Context, email string) (string, error) {
	token := shared.NewID("rst_")
	if err := s.redis.Set(ctx, "reset:"+token, email, resetTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume redeems a token exactly once. GETDEL makes the read and the
// invalidation a single step.
func (s *RedisTokenStore) Consume(ctx context.Context, token string) (string, error) {
	email, err := s.redis.GetDel(ctx, "reset:"+token).Result()
	if err == redis.Nil {
		return "", shared.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

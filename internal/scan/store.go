package scan

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = time.Hour

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{redis: redisClient, ttl: ttl}
}

func (s *Store) Create(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = shared.NewID("scan_")
	}
	now := time.Now()
	sess.CreatedAt = now
	sess.UpdatedAt = now

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sess.key(), data, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.redis.Get(ctx, "scan:"+id).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Update overwrites an existing session. A session that was deleted in
// the meantime is not recreated; the write is dropped with ErrNotFound.
func (s *Store) Update(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now()
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	set, err := s.redis.SetXX(ctx, sess.key(), data, s.ttl).Result()
	if err != nil {
		return err
	}
	if !set {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, "scan:"+id).Err()
}

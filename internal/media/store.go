package media

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/redis/go-redis/v9"
)

// Store keeps captured images in redis with a TTL, mirroring the app's
// lifecycle: an image lives as long as the screen that captured it, not
// across sessions. A copy is written to disk so clients can fetch the file
// by path for display.
type Store struct {
	redis *redis.Client
	dir   string
	ttl   time.Duration
}

func NewStore(redisClient *redis.Client, dir string, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Store{
		redis: redisClient,
		dir:   dir,
		ttl:   ttl,
	}
}

// Save probes dimensions, persists the bytes, and returns the handle.
// The size probe happens before anything is stored: an image without known
// dimensions is useless to every adapter.
func (s *Store) Save(ctx context.Context, source Source, data []byte) (*CapturedImage, error) {
	width, height, err := ProbeSize(data)
	if err != nil {
		return nil, err
	}

	img := &CapturedImage{
		ID:        shared.NewID("img_"),
		Source:    source,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
	}
	img.Path = filepath.Join(s.dir, img.ID+".jpg")

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(img.Path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write media file: %w", err)
	}

	meta, err := json.Marshal(img)
	if err != nil {
		return nil, err
	}

	pipe := s.redis.Pipeline()
	pipe.Set(ctx, img.metaKey(), meta, s.ttl)
	pipe.Set(ctx, img.dataKey(), data, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return img, nil
}

func (s *Store) Get(ctx context.Context, id string) (*CapturedImage, error) {
	img := &CapturedImage{ID: id}
	data, err := s.redis.Get(ctx, img.metaKey()).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, img); err != nil {
		return nil, err
	}
	return img, nil
}

// Bytes returns the raw upload for adapters that re-encode or ship the
// image to a remote service.
func (s *Store) Bytes(ctx context.Context, id string) ([]byte, error) {
	img := &CapturedImage{ID: id}
	data, err := s.redis.Get(ctx, img.dataKey()).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	return data, err
}

// Image returns the decoded pixels for adapters that work locally.
func (s *Store) Image(ctx context.Context, id string) (image.Image, error) {
	data, err := s.Bytes(ctx, id)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	img := &CapturedImage{ID: id}
	if err := s.redis.Del(ctx, img.metaKey(), img.dataKey()).Err(); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, id+".jpg")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// Sweep removes disk copies whose redis entries have expired. The TTL only
// clears the redis keys, so the files need a janitor.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jpg" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < s.ttl {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// TTL reports the retention window, used to pace the sweep loop.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

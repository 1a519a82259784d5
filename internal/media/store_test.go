package media

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, t.TempDir(), time.Hour), mr
}

func TestSaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	data := jpegBytes(t, 320, 240)
	img, err := store.Save(ctx, SourceCamera, data)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if img.Width != 320 || img.Height != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", img.Width, img.Height)
	}
	if img.Source != SourceCamera {
		t.Errorf("source = %q", img.Source)
	}
	if _, err := os.Stat(img.Path); err != nil {
		t.Errorf("disk copy missing: %v", err)
	}

	got, err := store.Get(ctx, img.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != img.ID || got.Width != 320 {
		t.Errorf("unexpected meta %+v", got)
	}

	raw, err := store.Bytes(ctx, img.ID)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if len(raw) != len(data) {
		t.Errorf("bytes length = %d, want %d", len(raw), len(data))
	}

	decoded, err := store.Image(ctx, img.ID)
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if decoded.Bounds().Dx() != 320 {
		t.Errorf("unexpected bounds %v", decoded.Bounds())
	}
}

func TestSaveRejectsUndecodableData(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Save(context.Background(), SourceLibrary, []byte("not an image"))
	if !errors.Is(err, ErrSizeProbe) {
		t.Errorf("expected ErrSizeProbe, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Get(context.Background(), "img_nope"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestImageExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	img, err := store.Save(ctx, SourceCamera, jpegBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, img.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected expiry, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	img, _ := store.Save(ctx, SourceCamera, jpegBytes(t, 10, 10))
	if err := store.Delete(ctx, img.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, img.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := os.Stat(img.Path); !os.IsNotExist(err) {
		t.Errorf("disk copy should be unlinked, got %v", err)
	}

	// Deleting again is a no-op, not an error.
	if err := store.Delete(ctx, img.ID); err != nil {
		t.Errorf("repeat Delete failed: %v", err)
	}
}

func TestSweepRemovesExpiredFiles(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	old, _ := store.Save(ctx, SourceCamera, jpegBytes(t, 10, 10))
	fresh, _ := store.Save(ctx, SourceCamera, jpegBytes(t, 12, 12))

	// Age the first file past the retention window.
	stale := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(old.Path, stale, stale); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	removed, err := store.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old.Path); !os.IsNotExist(err) {
		t.Errorf("expired file should be gone, got %v", err)
	}
	if _, err := os.Stat(fresh.Path); err != nil {
		t.Errorf("fresh file should survive: %v", err)
	}
}

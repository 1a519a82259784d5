package user

import (
	"context"
	"errors"
	"testing"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestUserDB(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	store := NewStore(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return store
}

func TestStoreCreateAssignsID(t *testing.T) {
	store := setupTestUserDB(t)
	ctx := context.Background()

	u := &User{Email: "a@example.com", PasswordHash: "hash"}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.ID == "" {
		t.Error("expected generated id")
	}
}

func TestStoreDuplicateEmailRejected(t *testing.T) {
	store := setupTestUserDB(t)
	ctx := context.Background()

	if err := store.Create(ctx, &User{Email: "a@example.com", PasswordHash: "h1"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Create(ctx, &User{Email: "a@example.com", PasswordHash: "h2"}); err == nil {
		t.Error("expected unique index violation")
	}
}

func TestStoreGetByEmail(t *testing.T) {
	store := setupTestUserDB(t)
	ctx := context.Background()

	if err := store.Create(ctx, &User{Email: "a@example.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u, err := store.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.PasswordHash != "hash" {
		t.Errorf("unexpected user %+v", u)
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreEmailExists(t *testing.T) {
	store := setupTestUserDB(t)
	ctx := context.Background()

	exists, err := store.EmailExists(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if exists {
		t.Error("expected missing email")
	}

	store.Create(ctx, &User{Email: "a@example.com", PasswordHash: "hash"})
	exists, err = store.EmailExists(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if !exists {
		t.Error("expected existing email")
	}
}

func TestStoreUpdatePassword(t *testing.T) {
	store := setupTestUserDB(t)
	ctx := context.Background()

	store.Create(ctx, &User{Email: "a@example.com", PasswordHash: "old"})
	if err := store.UpdatePassword(ctx, "a@example.com", "new"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	u, _ := store.GetByEmail(ctx, "a@example.com")
	if u.PasswordHash != "new" {
		t.Errorf("hash = %q, want new", u.PasswordHash)
	}

	if err := store.UpdatePassword(ctx, "missing@example.com", "x"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

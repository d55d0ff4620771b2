package storage

import (
	"context"
	"errors"
	"testing"
)

func TestSessionRepo_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepo(db, "")
	ctx := context.Background()

	if _, err := repo.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
	}

	first := &SessionRecord{
		AccessToken:   "access-1",
		RefreshToken:  "refresh-1",
		AccountID:     "did:plc:alice",
		AccountHandle: "alice.bsky.social",
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Saving again replaces the whole record
	if err := repo.Save(ctx, &SessionRecord{AccessToken: "access-2", AccountID: "did:plc:alice"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.AccessToken != "access-2" || got.RefreshToken != "" || got.AccountHandle != "" {
		t.Errorf("Get() = %+v, want replaced record", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("Get() UpdatedAt should be set")
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepo_NamesAreIsolated(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := NewSessionRepo(db, "a")
	b := NewSessionRepo(db, "b")
	if err := a.Save(ctx, &SessionRecord{AccessToken: "token-a"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := b.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on other name error = %v, want ErrNotFound", err)
	}
}

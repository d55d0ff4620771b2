package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"skynotes/internal/bsky"
	"skynotes/internal/storage"
	"skynotes/internal/storage/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) *storage.SessionRepo {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}
	return storage.NewSessionRepo(db, "")
}

func TestProvider_Current(t *testing.T) {
	store := newTestStore(t)
	p := NewProvider(store, bsky.NewClient("http://unused", time.Second))
	ctx := context.Background()

	if _, err := p.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current() on empty store error = %v, want ErrNoSession", err)
	}

	_ = store.Save(ctx, &storage.SessionRecord{RefreshToken: "only-refresh"})
	if _, err := p.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current() without access token error = %v, want ErrNoSession", err)
	}

	_ = store.Save(ctx, &storage.SessionRecord{AccessToken: "access", AccountID: "did:plc:alice"})
	s, err := p.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if s.AccessToken != "access" {
		t.Errorf("Current() AccessToken = %v, want access", s.AccessToken)
	}
}

func TestProvider_Current_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Get(gomock.Any()).Return(nil, errors.New("locked"))

	_, err := NewProvider(store, nil).Current(context.Background())
	if err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("Current() error = %v, want a storage error", err)
	}
}

func TestProvider_Refresh(t *testing.T) {
	tests := []struct {
		name        string
		serverResp  func(w http.ResponseWriter, r *http.Request)
		wantErr     bool
		wantAccess  string
		wantRefresh string
	}{
		{
			name: "rotates both tokens",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(bsky.SessionTokens{AccessJwt: "access-2", RefreshJwt: "refresh-2"})
			},
			wantAccess:  "access-2",
			wantRefresh: "refresh-2",
		},
		{
			name: "keeps refresh token when not rotated",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(bsky.SessionTokens{AccessJwt: "access-2"})
			},
			wantAccess:  "access-2",
			wantRefresh: "refresh-1",
		},
		{
			name: "server rejects refresh",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr:     true,
			wantAccess:  "access-1",
			wantRefresh: "refresh-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			store := newTestStore(t)
			ctx := context.Background()
			old := &storage.SessionRecord{
				AccessToken:   "access-1",
				RefreshToken:  "refresh-1",
				AccountID:     "did:plc:alice",
				AccountHandle: "alice.bsky.social",
			}
			_ = store.Save(ctx, old)

			p := NewProvider(store, bsky.NewClient(server.URL, time.Second))
			next, err := p.Refresh(ctx, old)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Refresh() expected error, got nil")
				}
			} else {
				if err != nil {
					t.Fatalf("Refresh() unexpected error: %v", err)
				}
				if next.AccessToken != tt.wantAccess || next.RefreshToken != tt.wantRefresh {
					t.Errorf("Refresh() = %+v", next)
				}
				if next.AccountID != "did:plc:alice" {
					t.Errorf("Refresh() AccountID = %v, want did:plc:alice", next.AccountID)
				}
			}

			// The stored record reflects the outcome
			stored, err := store.Get(ctx)
			if err != nil {
				t.Fatalf("store.Get() error = %v", err)
			}
			if stored.AccessToken != tt.wantAccess || stored.RefreshToken != tt.wantRefresh {
				t.Errorf("stored session = %+v", stored)
			}
		})
	}
}

func TestProvider_Refresh_NoRefreshToken(t *testing.T) {
	p := NewProvider(newTestStore(t), bsky.NewClient("http://unused", time.Second))
	if _, err := p.Refresh(context.Background(), &storage.SessionRecord{AccessToken: "a"}); err == nil {
		t.Error("Refresh() without refresh token should fail")
	}
}

func TestProvider_LoginLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(bsky.SessionTokens{
			AccessJwt:  "access",
			RefreshJwt: "refresh",
			Did:        "did:plc:alice",
			Handle:     "alice.bsky.social",
		})
	}))
	defer server.Close()

	store := newTestStore(t)
	p := NewProvider(store, bsky.NewClient(server.URL, time.Second))
	ctx := context.Background()

	s, err := p.Login(ctx, "alice.bsky.social", "app-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.AccountHandle != "alice.bsky.social" || s.RefreshToken != "refresh" {
		t.Errorf("Login() = %+v", s)
	}
	if _, err := p.Current(ctx); err != nil {
		t.Errorf("Current() after Login error = %v", err)
	}

	if err := p.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := p.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current() after Logout error = %v, want ErrNoSession", err)
	}
}

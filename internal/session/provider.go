// Package session owns the Bluesky credential: login, logout, lookup and
// token refresh. Nothing else writes the stored session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"skynotes/internal/bsky"
	"skynotes/internal/contextutil"
	"skynotes/internal/storage"
)

// ErrNoSession is returned when no usable credential is stored.
var ErrNoSession = errors.New("no session")

// Authenticator is the part of the Bluesky API the provider calls.
type Authenticator interface {
	CreateSession(ctx context.Context, identifier, password string) (*bsky.SessionTokens, error)
	RefreshSession(ctx context.Context, refreshToken string) (*bsky.SessionTokens, error)
}

// Provider reads, refreshes and replaces the stored session.
type Provider struct {
	store  storage.SessionStore
	auth   Authenticator
	now    func() time.Time
	logger *slog.Logger
}

// NewProvider creates a new Provider.
func NewProvider(store storage.SessionStore, auth Authenticator) *Provider {
	return &Provider{
		store:  store,
		auth:   auth,
		now:    time.Now,
		logger: slog.Default(),
	}
}

// Current returns the stored session, or ErrNoSession if there is none
// or it has no access token.
func (p *Provider) Current(ctx context.Context) (*storage.SessionRecord, error) {
	s, err := p.store.Get(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s.AccessToken == "" {
		return nil, ErrNoSession
	}
	return s, nil
}

// Refresh exchanges the session's refresh token for new tokens, persists the
// new session and returns it. The old refresh token is kept when the server
// does not rotate it. On error the stored session is left untouched.
func (p *Provider) Refresh(ctx context.Context, s *storage.SessionRecord) (*storage.SessionRecord, error) {
	logger := contextutil.LoggerFromContextOr(ctx, p.logger)

	if s == nil || s.RefreshToken == "" {
		return nil, fmt.Errorf("session has no refresh token")
	}

	tokens, err := p.auth.RefreshSession(ctx, s.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	next := &storage.SessionRecord{
		AccessToken:   tokens.AccessJwt,
		RefreshToken:  s.RefreshToken,
		AccountID:     s.AccountID,
		AccountHandle: s.AccountHandle,
		UpdatedAt:     p.now().UTC(),
	}
	if tokens.RefreshJwt != "" {
		next.RefreshToken = tokens.RefreshJwt
	}
	if tokens.Did != "" {
		next.AccountID = tokens.Did
	}
	if tokens.Handle != "" {
		next.AccountHandle = tokens.Handle
	}

	if err := p.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed session: %w", err)
	}

	logger.DebugContext(ctx, "session refreshed", "handle", next.AccountHandle)
	return next, nil
}

// Login creates a new session with an app password and stores it,
// replacing any previous one.
func (p *Provider) Login(ctx context.Context, identifier, password string) (*storage.SessionRecord, error) {
	logger := contextutil.LoggerFromContextOr(ctx, p.logger)

	tokens, err := p.auth.CreateSession(ctx, identifier, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s := &storage.SessionRecord{
		AccessToken:   tokens.AccessJwt,
		RefreshToken:  tokens.RefreshJwt,
		AccountID:     tokens.Did,
		AccountHandle: tokens.Handle,
		UpdatedAt:     p.now().UTC(),
	}
	if err := p.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	logger.InfoContext(ctx, "logged in to bluesky", "handle", s.AccountHandle, "did", s.AccountID)
	return s, nil
}

// Logout deletes the stored session.
func (p *Provider) Logout(ctx context.Context) error {
	if err := p.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	contextutil.LoggerFromContextOr(ctx, p.logger).InfoContext(ctx, "logged out of bluesky")
	return nil
}

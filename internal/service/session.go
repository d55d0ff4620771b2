package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"skynotes/internal/bsky"
	"skynotes/internal/contextutil"
	"skynotes/internal/session"
	"skynotes/internal/storage"
)

// SessionManager owns the stored Bluesky credential.
// Implemented by *session.Provider.
type SessionManager interface {
	Current(ctx context.Context) (*storage.SessionRecord, error)
	Login(ctx context.Context, identifier, password string) (*storage.SessionRecord, error)
	Logout(ctx context.Context) error
}

// LoginInput is a Bluesky handle or email and an app password.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate requires both fields.
func (in LoginInput) Validate(ctx context.Context) error {
	return fromValidation(validation.ValidateStructWithContext(ctx, &in,
		validation.Field(&in.Identifier, validation.Required),
		validation.Field(&in.Password, validation.Required),
	))
}

// SessionStatus describes the stored credential without exposing tokens.
type SessionStatus struct {
	LoggedIn  bool
	Handle    string
	DID       string
	UpdatedAt time.Time
}

// SessionService logs in and out of Bluesky.
type SessionService interface {
	Status(ctx context.Context) (SessionStatus, error)
	Login(ctx context.Context, in LoginInput) (SessionStatus, error)
	Logout(ctx context.Context) error
}

type sessionService struct {
	sessions SessionManager
	logger   *slog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessions SessionManager) SessionService {
	return &sessionService{
		sessions: sessions,
		logger:   slog.Default(),
	}
}

func (s *sessionService) Status(ctx context.Context) (SessionStatus, error) {
	rec, err := s.sessions.Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return SessionStatus{}, nil
	}
	if err != nil {
		return SessionStatus{}, WrapError(err, "failed to load session")
	}
	return statusOf(rec), nil
}

func (s *sessionService) Login(ctx context.Context, in LoginInput) (SessionStatus, error) {
	logger := contextutil.LoggerFromContextOr(ctx, s.logger)

	if err := in.Validate(ctx); err != nil {
		return SessionStatus{}, err
	}

	rec, err := s.sessions.Login(ctx, in.Identifier, in.Password)
	if err != nil {
		logger.WarnContext(ctx, "bluesky login failed", "identifier", in.Identifier, "error", err)
		var apiErr *bsky.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return SessionStatus{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return SessionStatus{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return statusOf(rec), nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Logout(ctx); err != nil {
		return WrapError(err, "failed to log out")
	}
	return nil
}

func statusOf(rec *storage.SessionRecord) SessionStatus {
	return SessionStatus{
		LoggedIn:  true,
		Handle:    rec.AccountHandle,
		DID:       rec.AccountID,
		UpdatedAt: rec.UpdatedAt,
	}
}

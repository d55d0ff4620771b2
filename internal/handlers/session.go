package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"skynotes/internal/service"
)

// SessionHandler logs the app in and out of Bluesky.
type SessionHandler struct {
	sessions service.SessionService
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   slog.Default(),
	}
}

// SessionResponse never includes tokens.
type SessionResponse struct {
	LoggedIn  bool       `json:"logged_in"`
	Handle    string     `json:"handle,omitempty"`
	DID       string     `json:"did,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toSessionResponse(s service.SessionStatus) SessionResponse {
	resp := SessionResponse{LoggedIn: s.LoggedIn, Handle: s.Handle, DID: s.DID}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

// Status handles GET /api/session.
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	status, err := h.sessions.Status(ctx)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to load session")
		return
	}
	writeJSON(ctx, logger, w, http.StatusOK, toSessionResponse(status))
}

// Login handles POST /api/session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	var in service.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := h.sessions.Login(ctx, in)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to log in")
		return
	}
	logger.InfoContext(ctx, "bluesky session stored", "handle", status.Handle)
	writeJSON(ctx, logger, w, http.StatusOK, toSessionResponse(status))
}

// Logout handles DELETE /api/session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if err := h.sessions.Logout(ctx); err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

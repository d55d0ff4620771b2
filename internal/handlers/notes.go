package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"skynotes/internal/service"
	"skynotes/internal/storage"
)

// NoteHandler serves the note CRUD and publishing endpoints.
type NoteHandler struct {
	notes  service.NoteService
	logger *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes service.NoteService) *NoteHandler {
	return &NoteHandler{
		notes:  notes,
		logger: slog.Default(),
	}
}

// NoteResponse is the JSON form of a note.
type NoteResponse struct {
	ID                string               `json:"id"`
	Content           string               `json:"content"`
	Title             string               `json:"title"`
	Color             string               `json:"color"`
	Status            storage.NoteStatus   `json:"status"`
	ScheduledFor      *time.Time           `json:"scheduled_for"`
	PostedAt          *time.Time           `json:"posted_at"`
	PostURI           string               `json:"post_uri,omitempty"`
	PostHistory       []time.Time          `json:"post_history"`
	FailureReason     *string              `json:"failure_reason"`
	CustomLinkPreview *storage.LinkPreview `json:"custom_link_preview"`
	ImageData         []string             `json:"image_data"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// ScheduleRequest carries the publish time as RFC 3339 text or unix milliseconds.
type ScheduleRequest struct {
	ScheduledFor json.RawMessage `json:"scheduled_for"`
}

func toNoteResponse(n *storage.NoteRecord) NoteResponse {
	resp := NoteResponse{
		ID:                n.ID,
		Content:           n.Content,
		Title:             n.Title,
		Color:             n.Color,
		Status:            n.Status,
		ScheduledFor:      n.ScheduledFor,
		PostedAt:          n.PostedAt,
		PostURI:           n.PostURI,
		PostHistory:       n.PostHistory,
		CustomLinkPreview: n.CustomLinkPreview,
		ImageData:         n.ImageData,
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
	if resp.PostHistory == nil {
		resp.PostHistory = []time.Time{}
	}
	if resp.ImageData == nil {
		resp.ImageData = []string{}
	}
	if n.FailureReason != "" {
		reason := n.FailureReason
		resp.FailureReason = &reason
	}
	return resp
}

// List handles GET /api/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	notes, err := h.notes.List(ctx)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to list notes")
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}
	writeJSON(ctx, logger, w, http.StatusOK, resp)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	note, err := h.notes.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to load note")
		return
	}
	writeJSON(ctx, logger, w, http.StatusOK, toNoteResponse(note))
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	var in service.NoteInput
	if err := decodeJSON(r, &in); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.Create(ctx, in)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to create note")
		return
	}
	writeJSON(ctx, logger, w, http.StatusCreated, toNoteResponse(note))
}

// Update handles PUT /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	var in service.NoteInput
	if err := decodeJSON(r, &in); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to update note")
		return
	}
	writeJSON(ctx, logger, w, http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if err := h.notes.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Schedule handles POST /api/notes/{id}/schedule.
func (h *NoteHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	var req ScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	when, err := parseScheduledFor(req.ScheduledFor)
	if err != nil {
		logger.WarnContext(ctx, "invalid scheduled_for", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	note, err := h.notes.Schedule(ctx, chi.URLParam(r, "id"), service.ScheduleInput{ScheduledFor: when})
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to schedule note")
		return
	}
	writeJSON(ctx, logger, w, http.StatusOK, toNoteResponse(note))
}

// Unschedule handles POST /api/notes/{id}/unschedule.
func (h *NoteHandler) Unschedule(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.notes.Unschedule, "Failed to unschedule note")
}

// Retry handles POST /api/notes/{id}/retry.
func (h *NoteHandler) Retry(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.notes.Retry, "Failed to reset note")
}

// Publish handles POST /api/notes/{id}/publish. The response carries the
// note after the attempt; a failed post is reported through its status.
func (h *NoteHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.notes.PostNow, "Failed to publish note")
}

func (h *NoteHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string) (*storage.NoteRecord, error),
	defaultMsg string,
) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	note, err := op(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, logger, w, err, defaultMsg)
		return
	}
	writeJSON(ctx, logger, w, http.StatusOK, toNoteResponse(note))
}

// parseScheduledFor accepts an RFC 3339 string, a string of digits, or a
// JSON number, the latter two as unix milliseconds. Null or absent yields
// the zero time, which the service rejects.
func parseScheduledFor(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, errors.New("scheduled_for must be RFC 3339 or unix milliseconds")
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, errors.New("scheduled_for must be RFC 3339 or unix milliseconds")
	}
	return time.UnixMilli(ms).UTC(), nil
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"skynotes/internal/service"
)

// SchedulerHandler exposes the dispatcher tick and the note mirror.
type SchedulerHandler struct {
	notes  service.NoteService
	logger *slog.Logger
}

// NewSchedulerHandler creates a new SchedulerHandler.
func NewSchedulerHandler(notes service.NoteService) *SchedulerHandler {
	return &SchedulerHandler{
		notes:  notes,
		logger: slog.Default(),
	}
}

// MirrorResponse is the mirrored note list.
type MirrorResponse struct {
	SyncedAt *time.Time     `json:"synced_at"`
	Notes    []NoteResponse `json:"notes"`
}

// SyncResponse reports how many notes a mirror sync wrote.
type SyncResponse struct {
	Synced int `json:"synced"`
}

// Tick handles POST /api/scheduler/tick.
func (h *SchedulerHandler) Tick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	stats, err := h.notes.Tick(ctx)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Tick failed")
		return
	}
	writeJSON(ctx, logger, w, http.StatusOK, stats)
}

// MirrorNotes handles GET /api/mirror/notes.
func (h *SchedulerHandler) MirrorNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	snap, err := h.notes.MirrorNotes(ctx)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to read mirror")
		return
	}

	resp := MirrorResponse{Notes: make([]NoteResponse, 0, len(snap.Notes))}
	if !snap.SyncedAt.IsZero() {
		t := snap.SyncedAt
		resp.SyncedAt = &t
	}
	for _, n := range snap.Notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	writeJSON(ctx, logger, w, http.StatusOK, resp)
}

// SyncMirror handles POST /api/mirror/sync.
func (h *SchedulerHandler) SyncMirror(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	n, err := h.notes.SyncMirror(ctx)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Mirror sync failed")
		return
	}
	writeJSON(ctx, logger, w, http.StatusOK, SyncResponse{Synced: n})
}

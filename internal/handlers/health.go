package handlers

import (
	"context"
	"net/http"
	"time"

	"skynotes/internal/contextutil"
	"skynotes/internal/service"
)

// Pinger checks that the note store is reachable. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	store              Pinger
	sessions           service.SessionService
	mirror             service.MirrorReader
	healthCheckTimeout time.Duration
	now                func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger, sessions service.SessionService, mirror service.MirrorReader) *HealthHandler {
	return &HealthHandler{
		store:              store,
		sessions:           sessions,
		mirror:             mirror,
		healthCheckTimeout: 5 * time.Second,
		now:                time.Now,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Last mirror sync, absent if the mirror has never been synced
	MirrorSyncedAt *time.Time `json:"mirror_synced_at,omitempty"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
//
// Returns 200 OK when the store is reachable, 503 Service Unavailable when
// it is not. A missing Bluesky session is reported but is not an error;
// notes due while logged out fail with "no session".
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.store.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "store health check failed", "error", err)
		checks["store"] = "error"
		issues = append(issues, "store_unavailable")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	sess, err := h.sessions.Status(checkCtx)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "session health check failed", "error", err)
		checks["session"] = "error"
		issues = append(issues, "session_unreadable")
		if status == "healthy" {
			status = "degraded"
		}
	case sess.LoggedIn:
		checks["session"] = "logged_in"
	default:
		checks["session"] = "logged_out"
	}

	response := HealthResponse{
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	syncedAt, err := h.mirror.SyncedAt()
	switch {
	case err != nil:
		logger.WarnContext(ctx, "mirror health check failed", "error", err)
		checks["mirror"] = "error"
		issues = append(issues, "mirror_unreadable")
		if status == "healthy" {
			status = "degraded"
		}
	case syncedAt.IsZero():
		checks["mirror"] = "never_synced"
	default:
		checks["mirror"] = "ok"
		response.MirrorSyncedAt = &syncedAt
	}

	response.Status = status
	if len(issues) > 0 {
		response.Issues = issues
	}

	writeJSON(ctx, logger, w, httpStatus, response)
}

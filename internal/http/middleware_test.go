package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"skynotes/internal/contextutil"
)

func TestLoggerMiddleware(t *testing.T) {
	var got *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = contextutil.LoggerFromContextOr(r.Context(), nil)
	})

	LoggerMiddleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	if got == nil || got == slog.Default() {
		t.Error("LoggerMiddleware() should put a request logger in the context")
	}
}

func TestRequestLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	tests := []struct {
		name      string
		path      string
		status    int
		wantEntry bool
	}{
		{name: "note request", path: "/api/notes", status: http.StatusCreated, wantEntry: true},
		{name: "healthy probe is quiet", path: "/api/health", status: http.StatusOK},
		{name: "failing probe is logged", path: "/api/health", status: http.StatusServiceUnavailable, wantEntry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			w := httptest.NewRecorder()
			RequestLogger(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("status = %v, want %v", w.Code, tt.status)
			}
			logged := strings.Contains(buf.String(), "http request")
			if logged != tt.wantEntry {
				t.Errorf("logged = %v, want %v (output %q)", logged, tt.wantEntry, buf.String())
			}
			if logged && !strings.Contains(buf.String(), "status="+strconv.Itoa(tt.status)) {
				t.Errorf("log entry missing status: %q", buf.String())
			}
		})
	}
}

func TestResponseWriter_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusConflict)

	if rw.statusCode != http.StatusConflict || rec.Code != http.StatusConflict {
		t.Errorf("recorded %d, underlying %d, want 409", rw.statusCode, rec.Code)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "preflight short-circuits", method: http.MethodOptions, origin: "chrome-extension://abc", wantStatus: http.StatusNoContent, wantOrigin: "chrome-extension://abc"},
		{name: "origin echoed", method: http.MethodPut, origin: "chrome-extension://abc", wantStatus: http.StatusTeapot, wantOrigin: "chrome-extension://abc"},
		{name: "wildcard without origin", method: http.MethodGet, wantStatus: http.StatusTeapot, wantOrigin: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/notes", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			CORS(next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") || !strings.Contains(got, "PUT") {
				t.Errorf("Allow-Methods = %q, want PUT and DELETE", got)
			}
		})
	}
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skynotes/internal/handlers"
	"skynotes/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	NoteService    service.NoteService
	SessionService service.SessionService
	Mirror         service.MirrorReader
	Store          handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	notes := handlers.NewNoteHandler(deps.NoteService)
	sessions := handlers.NewSessionHandler(deps.SessionService)
	sched := handlers.NewSchedulerHandler(deps.NoteService)
	health := handlers.NewHealthHandler(deps.Store, deps.SessionService, deps.Mirror)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", health)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", notes.List)
			r.Post("/", notes.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", notes.Get)
				r.Put("/", notes.Update)
				r.Delete("/", notes.Delete)
				r.Post("/schedule", notes.Schedule)
				r.Post("/unschedule", notes.Unschedule)
				r.Post("/retry", notes.Retry)
				r.Post("/publish", notes.Publish)
			})
		})

		r.Get("/mirror/notes", sched.MirrorNotes)
		r.Post("/mirror/sync", sched.SyncMirror)
		r.Post("/scheduler/tick", sched.Tick)

		r.Get("/session", sessions.Status)
		r.Post("/session", sessions.Login)
		r.Delete("/session", sessions.Logout)
	})

	return r
}

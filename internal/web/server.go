package web

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timetracker/internal/api"
)

// Server wires the HTTP routes for the time tracker UI.
type Server struct {
	api      api.API
	renderer *Renderer
	logger   *slog.Logger
	metrics  *Metrics
}

// NewServer creates the HTTP server over the given API.
func NewServer(a api.API, renderer *Renderer, logger *slog.Logger) *Server {
	return &Server{
		api:      a,
		renderer: renderer,
		logger:   logger,
		metrics:  NewMetrics(),
	}
}

// Routes builds the chi router with all middleware and handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(requestMetrics(s.metrics))

	r.Get("/", s.handleIndex)
	r.Get("/track", s.handleTrackPage)

	r.Get("/work-items", s.handleWorkItemsPage)
	r.Post("/work-items", s.handleCreateWorkItem)
	r.Post("/work-items/{id}", s.handleRenameWorkItem)
	r.Get("/work-items/table", s.handleWorkItemsTable)

	r.Post("/timer/start", s.handleTimerStart)
	r.Post("/timer/stop", s.handleTimerStop)

	r.Get("/entries", s.handleEntriesTable)
	r.Get("/entries/{id}/edit", s.handleEntryEditForm)
	r.Post("/entries/{id}", s.handleEntryUpdate)
	r.Post("/entries/{id}/delete", s.handleEntryDelete)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	staticRoot, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/track", http.StatusFound)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Package http exposes a panel over REST plus SSE: read the panel,
// toggle entries, load and commit, park and restore drafts, and stream
// state changes to connected clients.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/pkg/domain"
)

//go:embed openapi.yaml
var openAPISpec []byte

// Panel is the surface of the option list the server drives.
// *optlist.Panel satisfies it.
type Panel interface {
	Entries() []domain.View
	Entry(key string) (domain.View, error)
	Links() []domain.Link
	SetChecked(key string, checked bool) error
	Load() error
	Commit(ctx context.Context) error
	SaveDraft(ctx context.Context, name string) error
	RestoreDraft(ctx context.Context, name string) error
	DeleteDraft(ctx context.Context, name string) error
	Drafts(ctx context.Context) ([]string, error)
}

var _ Panel = (*optlist.Panel)(nil)

// Server handles panel requests. The panel itself is single-goroutine,
// so every mutating handler runs under the server's mutex.
type Server struct {
	mu      sync.Mutex
	panel   Panel
	streams *StreamManager
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for a panel.
func NewHandler(panel Panel, opts ...Option) http.Handler {
	server := &Server{
		panel:   panel,
		streams: NewStreamManager(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/health", server.getHealth)
	r.Get("/info", server.getInfo)
	r.Get("/panel", server.getPanel)
	r.Post("/toggle", server.toggle)
	r.Post("/load", server.load)
	r.Post("/commit", server.commit)

	r.Get("/drafts", server.listDrafts)
	r.Put("/drafts/{id}", server.saveDraft)
	r.Post("/drafts/{id}/restore", server.restoreDraft)
	r.Delete("/drafts/{id}", server.deleteDraft)

	r.Get("/events", server.subscribeEvents)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openAPISpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PanelResponse is the GET /panel payload.
type PanelResponse struct {
	Entries []domain.View `json:"entries"`
	Links   []domain.Link `json:"links"`
}

// ToggleRequest is the POST /toggle payload.
type ToggleRequest struct {
	Key     string `json:"key"`
	Checked bool   `json:"checked"`
}

// CommitFailure is one failed write in a commit response.
type CommitFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "optlist-http",
		"version": strings.TrimSpace(optlist.Version),
	})
}

func (s *Server) getPanel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := PanelResponse{Entries: s.panel.Entries(), Links: s.panel.Links()}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	var body ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("toggle: invalid request body", "err", err)
		return
	}
	if body.Key == "" {
		http.Error(w, "Missing entry key", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.panel.SetChecked(body.Key, body.Checked)
	var entries []domain.View
	if err == nil {
		entries = s.panel.Entries()
	}
	s.mu.Unlock()

	if err != nil {
		s.writePanelError(w, "toggle", err)
		return
	}

	s.broadcast("toggle", entries)
	writeJSON(w, http.StatusOK, PanelResponse{Entries: entries})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.panel.Load()
	var entries []domain.View
	if err == nil {
		entries = s.panel.Entries()
	}
	s.mu.Unlock()

	if err != nil {
		s.writePanelError(w, "load", err)
		return
	}

	s.broadcast("load", entries)
	writeJSON(w, http.StatusOK, PanelResponse{Entries: entries})
}

func (s *Server) commit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.panel.Commit(r.Context())
	s.mu.Unlock()

	if err != nil {
		if failures, ok := domain.CommitFailures(err); ok {
			resp := make([]CommitFailure, 0, len(failures))
			for _, f := range failures {
				resp = append(resp, CommitFailure{Key: f.Key, Error: f.Err.Error()})
			}
			s.logger.Warn("commit: partial failure", "failed", len(failures))
			writeJSON(w, http.StatusConflict, map[string]any{"failures": resp})
			return
		}
		s.writePanelError(w, "commit", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDrafts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.panel.Drafts(r.Context())
	if err != nil {
		s.writePanelError(w, "drafts", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"drafts": ids})
}

func (s *Server) saveDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	err := s.panel.SaveDraft(r.Context(), id)
	s.mu.Unlock()

	if err != nil {
		s.writePanelError(w, "save draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) restoreDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	err := s.panel.RestoreDraft(r.Context(), id)
	var entries []domain.View
	if err == nil {
		entries = s.panel.Entries()
	}
	s.mu.Unlock()

	if err != nil {
		s.writePanelError(w, "restore draft", err)
		return
	}

	s.broadcast("restore", entries)
	writeJSON(w, http.StatusOK, PanelResponse{Entries: entries})
}

func (s *Server) deleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.panel.DeleteDraft(r.Context(), id); err != nil {
		s.writePanelError(w, "delete draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writePanelError maps domain errors to HTTP statuses.
func (s *Server) writePanelError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrDraftNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrEntryDisabled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrReleased):
		http.Error(w, err.Error(), http.StatusGone)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func (s *Server) broadcast(eventType string, entries []domain.View) {
	payload, err := json.Marshal(map[string]any{
		"type":    eventType,
		"entries": entries,
	})
	if err != nil {
		return
	}
	s.streams.Broadcast(string(payload))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Optlist API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

package server

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/nav"
	"github.com/matzehuels/protonav/pkg/observability"
	"github.com/matzehuels/protonav/pkg/schema"
	"github.com/matzehuels/protonav/pkg/session"
)

// maxBodySize bounds uploaded documents.
const maxBodySize = 16 << 20

// Options configures a Server.
type Options struct {
	// Store persists trails. Nil disables persistence.
	Store session.Store

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server serves navigation sessions over HTTP.
type Server struct {
	store  session.Store
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	nav  *nav.Navigator
	sess *session.Session
}

// New creates a server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{
		store:    opts.Store,
		logger:   opts.Logger,
		sessions: make(map[string]*entry),
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument(r))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleView)
			r.Delete("/", s.handleDelete)
			r.Post("/drill", s.handleDrill)
			r.Post("/jump/{index}", s.handleJump)
			r.Post("/back", s.handleBack)
			r.Put("/document", s.handleDocument)
		})
	})
	return r
}

// Len returns the number of live sessions.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// =============================================================================
// Responses
// =============================================================================

type sessionResponse struct {
	ID       string   `json:"id"`
	Source   string   `json:"source,omitempty"`
	Restored bool     `json:"restored,omitempty"`
	View     nav.View `json:"view"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type drillRequest struct {
	Key string `json:"key"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	doc, fingerprint, err := readDocument(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	n := nav.NewNavigator(nav.WithDocument(doc))
	sess := session.New(r.URL.Query().Get("source"), fingerprint, n.Stack())

	restored := false
	if s.store != nil && r.URL.Query().Get("resume") == "true" {
		if prev, err := s.store.Latest(r.Context(), fingerprint); err == nil {
			_, restored = n.Restore(prev.Trail)
		}
	}

	e := &entry{nav: n, sess: sess}
	s.mu.Lock()
	s.sessions[sess.ID] = e
	s.mu.Unlock()

	s.persist(r.Context(), e)
	s.logger.Debug("session created", "id", sess.ID, "root", doc.RootKey(), "restored", restored)
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:       sess.ID,
		Source:   sess.Source,
		Restored: restored,
		View:     n.View(),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	e, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, e, e.nav.View())
}

func (s *Server) handleDrill(w http.ResponseWriter, r *http.Request) {
	e, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req drillRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode drill request"))
		return
	}
	if err := errors.ValidateDefinitionKey(req.Key); err != nil {
		s.writeError(w, err)
		return
	}

	v := e.nav.Drill(req.Key)
	s.persist(r.Context(), e)
	s.respond(w, e, v)
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	e, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidIndex, err, "breadcrumb index must be an integer"))
		return
	}

	// Out of range indexes are a no-op so stale clients stay harmless.
	v := e.nav.JumpTo(index)
	s.persist(r.Context(), e)
	s.respond(w, e, v)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	e, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	v := e.nav.Back()
	s.persist(r.Context(), e)
	s.respond(w, e, v)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	e, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	doc, fingerprint, err := readDocument(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	v := e.nav.SetDocument(doc)
	s.mu.Lock()
	e.sess.Fingerprint = fingerprint
	s.mu.Unlock()
	s.persist(r.Context(), e)
	s.respond(w, e, v)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id))
		return
	}

	if s.store != nil {
		if err := s.store.Delete(r.Context(), id); err != nil {
			s.logger.Warn("delete stored session", "id", id, "err", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) lookup(r *http.Request) (*entry, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return e, nil
}

// persist saves the session's trail. Storage failures are logged, not
// returned: navigation itself has already succeeded.
func (s *Server) persist(ctx context.Context, e *entry) {
	if s.store == nil {
		return
	}
	s.mu.Lock()
	e.sess.Trail = e.nav.Stack()
	snapshot := *e.sess
	s.mu.Unlock()

	if err := s.store.Save(ctx, &snapshot); err != nil {
		s.logger.Warn("save session", "id", snapshot.ID, "err", err)
		return
	}
	s.mu.Lock()
	e.sess.CreatedAt = snapshot.CreatedAt
	s.mu.Unlock()
}

func (s *Server) respond(w http.ResponseWriter, e *entry, v nav.View) {
	writeJSON(w, http.StatusOK, sessionResponse{ID: e.sess.ID, Source: e.sess.Source, View: v})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readDocument decodes the request body as a schema document. The format
// defaults to JSON and may be overridden with ?format=yaml|toml.
func readDocument(r *http.Request) (*schema.Document, string, error) {
	format := schema.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := schema.ParseFormat(f)
		if err != nil {
			return nil, "", err
		}
		format = parsed
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	doc, err := schema.Parse(data, format)
	if err != nil {
		return nil, "", err
	}
	return doc, schema.Fingerprint(data), nil
}

// instrument logs requests and reports them to the HTTP hooks. The route is
// resolved against routes before the request is served, so both hook events
// carry the same pattern. Requests matching no route report unmatchedRoute.
func (s *Server) instrument(routes chi.Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := routePattern(routes, r)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			observability.HTTP().OnRequest(r.Context(), r.Method, route)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			observability.HTTP().OnResponse(r.Context(), r.Method, route, ww.Status(), elapsed)
			s.logger.Debug("request", "method", r.Method, "route", route, "status", ww.Status(), "duration", elapsed.Round(time.Microsecond))
		})
	}
}

const unmatchedRoute = "unmatched"

func routePattern(routes chi.Routes, r *http.Request) string {
	rctx := chi.NewRouteContext()
	if !routes.Match(rctx, r.Method, r.URL.Path) {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

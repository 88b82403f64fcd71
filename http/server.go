package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/lodestone"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

// Server exposes character extraction over HTTP.
type Server struct {
	router chi.Router

	// Characters resolves a character id into bound definitions.
	Characters lodestone.CharacterService

	// Definitions lists the definitions the server extracts with.
	Definitions lodestone.DefinitionSource

	// Metrics, if set, is mounted at /metrics.
	Metrics http.Handler

	Logger *slog.Logger
}

// NewServer returns a Server with routes configured.
func NewServer(characters lodestone.CharacterService, definitions lodestone.DefinitionSource, metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Characters:  characters,
		Definitions: definitions,
		Metrics:     metrics,
		Logger:      logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.Logger))

	r.Get("/health", s.handleHealth)
	r.Get("/definitions", s.handleListDefinitions)
	r.Get("/characters/{id}", s.handleCharacter)
	r.Get("/characters/{id}/{field}", s.handleCharacterField)
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type definitionInfo struct {
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Fields []string `json:"fields"`
}

func (s *Server) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := s.Definitions.Definitions()
	if err != nil {
		s.error(w, r, err)
		return
	}
	out := make([]definitionInfo, 0, len(defs))
	for _, d := range defs {
		out = append(out, definitionInfo{Name: d.Name(), URL: d.URL, Fields: d.Names()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"definitions": out})
}

func (s *Server) handleCharacter(w http.ResponseWriter, r *http.Request) {
	c, err := s.Characters.FindCharacterByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Serialize())
}

func (s *Server) handleCharacterField(w http.ResponseWriter, r *http.Request) {
	c, err := s.Characters.FindCharacterByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, r, err)
		return
	}

	field := chi.URLParam(r, "field")
	n, ok := c.Get(field)
	if !ok {
		s.error(w, r, lodestone.Errorf(lodestone.ENOTFOUND, "field %q not found", field))
		return
	}
	switch n := n.(type) {
	case *lodestone.Container:
		writeJSON(w, http.StatusOK, n.Serialize())
	default:
		v, _ := c.Value(field)
		rec := lodestone.NewRecord()
		rec.Set(n.Name(), v)
		writeJSON(w, http.StatusOK, rec)
	}
}

// error writes err as a JSON body with a status derived from its code.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error) {
	code := lodestone.ErrorCode(err)
	status := errorStatus(code)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": lodestone.ErrorMessage(err)})
}

func errorStatus(code string) int {
	switch code {
	case lodestone.EINVALID:
		return http.StatusBadRequest
	case lodestone.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RequestLogger logs every request once it has been served.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/httpapi/middleware"
	"github.com/hamed0406/pingwatch/internal/repo"
)

// Server exposes a read-only status surface for watch mode: the configured
// host set and the most recently completed cycle.
type Server struct {
	Logger *zap.Logger
	Cycles repo.CycleStore
	Hosts  []domain.Host
	Keys   []string
}

func NewServer(l *zap.Logger, cycles repo.CycleStore, hosts []domain.Host, keys []string) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{Logger: l, Cycles: cycles, Hosts: hosts, Keys: keys}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKey(s.Keys))
		r.Get("/api/hosts", s.handleListHosts)
		r.Get("/api/cycles/latest", s.handleLatestCycle)
	})

	return r
}

func (s *Server) handleListHosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Hosts)
}

func (s *Server) handleLatestCycle(w http.ResponseWriter, r *http.Request) {
	res, err := s.Cycles.Latest(r.Context())
	if err != nil {
		s.Logger.Warn("latest_cycle_error", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if res == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no cycle completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

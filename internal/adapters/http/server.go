// Package http exposes the solver over a small JSON API backed by a
// pluggable result store.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openqs/heom/internal/config"
	"github.com/openqs/heom/internal/logging"
	"github.com/openqs/heom/pkg/observability"
	"github.com/openqs/heom/pkg/ports"
	"github.com/openqs/heom/pkg/solver"
)

const apiVersion = "0.1.0"

// Server runs submitted simulation documents and persists their outcomes.
type Server struct {
	store     ports.ResultStore
	logger    *slog.Logger
	registry  *prometheus.Registry
	collector *observability.Collector
}

type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry sets the Prometheus registry solver metrics are registered
// on and /metrics is served from.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewHandler creates the HTTP handler for the simulation service.
func NewHandler(store ports.ResultStore, opts ...Option) http.Handler {
	s := &Server{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.collector = observability.NewCollector(s.registry)

	r := chi.NewRouter()
	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/simulations", s.postSimulation)
	r.Get("/simulations", s.listSimulations)
	r.Get("/simulations/{id}", s.getSimulation)
	r.Delete("/simulations/{id}", s.deleteSimulation)
	return r
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "heom-http",
		"api_version": apiVersion,
	})
}

// postSimulation accepts a simulation document (YAML or JSON), runs it
// synchronously and stores the outcome.
func (s *Server) postSimulation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	doc, err := config.Parse(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid simulation document: %v", err), http.StatusBadRequest)
		return
	}

	sv, times, err := doc.Build(
		solver.WithLogger(s.logger),
		solver.WithMetrics(s.collector),
	)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid simulation document: %v", err), http.StatusBadRequest)
		return
	}

	id := newID()
	rec := &ports.SimulationRecord{
		ID:        id,
		Status:    ports.StatusRunning,
		Submitted: time.Now().UTC(),
		NumADOs:   sv.NumADOs(),
	}
	if err := s.store.Save(r.Context(), id, rec); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}

	rho0, err := doc.InitialState(sv.Dim())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid simulation document: %v", err), http.StatusBadRequest)
		return
	}

	res, err := sv.Run(r.Context(), rho0, times)
	s.finish(w, r, rec, res, err)
}

// finish records the terminal state of a run and writes the response.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, rec *ports.SimulationRecord, res *solver.Result, runErr error) {
	status := http.StatusOK
	if runErr != nil {
		rec.Status = ports.StatusFailed
		rec.Error = runErr.Error()
		status = http.StatusUnprocessableEntity
		s.logger.Error("simulation failed", "id", rec.ID, "error", runErr)
	} else {
		rec.Status = ports.StatusCompleted
		rec.Times = res.Times
		rec.Expect = realExpect(res.Expect)
		s.logger.Info("simulation completed", "id", rec.ID, "points", len(res.Times))
	}

	if err := s.store.Save(r.Context(), rec.ID, rec); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, rec)
}

func (s *Server) getSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrSimulationNotFound) {
			http.Error(w, "Simulation not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listSimulations(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"simulations": ids})
}

func (s *Server) deleteSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("Response encode error: %v\n", err)
	}
}

func newID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

func realExpect(expect map[string][]complex128) map[string][]float64 {
	if len(expect) == 0 {
		return nil
	}
	out := make(map[string][]float64, len(expect))
	for name, vals := range expect {
		re := make([]float64, len(vals))
		for i, v := range vals {
			re[i] = real(v)
		}
		out[name] = re
	}
	return out
}

// Package server is the HTTP + WebSocket API surface for beacon.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/tmarchev/beacon/internal/app"
	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/narrative"
	"github.com/tmarchev/beacon/internal/report"
	"github.com/tmarchev/beacon/internal/store"
	"github.com/tmarchev/beacon/internal/webclient"
)

// Audit depth accepted from the API.
const (
	minAuditDepth = 1
	maxAuditDepth = 3
)

type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
	store        *store.Store
	narrativeWC  webclient.WebClient
}

// NewServer creates a Server with its own Orchestrator and audit store.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	storageRoot, err := expandPath(cfg.AppConfig.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	cfg.AppConfig.StorageRoot = storageRoot
	if err := os.MkdirAll(storageRoot, 0755); err != nil {
		logger.Warn("creating storage root directory",
			logging.Field{Key: "path", Value: storageRoot},
			logging.Field{Key: "error", Value: err.Error()})
	}

	st, err := store.Open(cfg.AppConfig.DatabasePath(), logger)
	if err != nil {
		return nil, fmt.Errorf("opening audit store: %w", err)
	}

	var gen narrative.Generator
	var narrativeWC webclient.WebClient
	if cfg.AppConfig.NarrativeCfg.Endpoint != "" {
		narrativeWC, err = webclient.NewWebClient(cfg.AppConfig.WebClientCfg, logger)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("creating narrative web client: %w", err)
		}
		gen = narrative.NewHTTPGenerator(cfg.AppConfig.NarrativeCfg, narrativeWC, logger)
	}

	s := &Server{
		cfg:          cfg,
		orchestrator: app.NewOrchestrator(cfg.AppConfig, st, gen, logger),
		router:       chi.NewRouter(),
		logger:       logger,
		store:        st,
		narrativeWC:  narrativeWC,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	r.Options("/audits", s.optionsHandler("GET, POST"))
	r.Options("/audits/{auditID}", s.optionsHandler("GET, DELETE"))
	r.Options("/audits/{auditID}/download", s.optionsHandler("GET"))
	r.Options("/jobs/audits", s.optionsHandler("POST"))
	r.Options("/jobs", s.optionsHandler("GET"))
	r.Options("/jobs/{jobID}", s.optionsHandler("GET, DELETE"))
	r.Options("/ws/audits", s.optionsHandler("GET"))

	// Synchronous audit plus stored-run reads
	r.Post("/audits", s.handleRunAudit)
	r.Get("/audits", s.handleListAudits)
	r.Get("/audits/{auditID}", s.handleGetAudit)
	r.Delete("/audits/{auditID}", s.handleDeleteAudit)
	r.Get("/audits/{auditID}/download", s.handleDownloadAudit)

	// Jobs over REST
	r.Post("/jobs/audits", s.handleStartAuditJob)
	r.Get("/jobs", s.handleListJobs)
	r.Get("/jobs/{jobID}", s.handleGetJob)
	r.Delete("/jobs/{jobID}", s.handleCancelJob)

	// WebSocket for job progress
	r.Get("/ws/audits", s.handleAuditWS)

	r.Get("/healthz", s.handleHealth)
	r.Get("/swagger/*", swaggerHandler())
	r.Get("/swagger/doc.json", handleSwaggerDoc)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close releases the audit store and narrative client.
func (s *Server) Close() {
	if s.store != nil {
		s.store.Close()
	}
	if s.narrativeWC != nil {
		s.narrativeWC.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeAuditRequest(r *http.Request) (StartAuditRequest, error) {
	var body StartAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return body, errors.New("invalid JSON")
	}
	if body.URL == "" {
		return body, errors.New("url is required")
	}
	if body.Depth == 0 {
		body.Depth = minAuditDepth
	}
	if body.Depth < minAuditDepth || body.Depth > maxAuditDepth {
		return body, fmt.Errorf("depth must be between %d and %d", minAuditDepth, maxAuditDepth)
	}
	return body, nil
}

// --- HTTP handlers ---

func (s *Server) handleRunAudit(w http.ResponseWriter, r *http.Request) {
	body, err := decodeAuditRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.orchestrator.RunAudit(r.Context(), body.URL, body.Depth)
	if err != nil {
		s.logger.Warn("running audit", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("audit complete",
		logging.Field{Key: "audit_id", Value: rep.ID},
		logging.Field{Key: "site_score", Value: rep.SiteScore})
	writeJSON(w, http.StatusOK, newAuditResponse(rep))
}

func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	audits, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.logger.Warn("listing audits", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, audits)
}

func (s *Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	auditID := chi.URLParam(r, "auditID")
	rep, err := s.store.Get(r.Context(), auditID)
	if err != nil {
		if errors.Is(err, store.ErrAuditNotFound) {
			writeError(w, http.StatusNotFound, "audit not found")
			return
		}
		s.logger.Warn("getting audit", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDeleteAudit(w http.ResponseWriter, r *http.Request) {
	auditID := chi.URLParam(r, "auditID")
	if err := s.store.Delete(r.Context(), auditID); err != nil {
		if errors.Is(err, store.ErrAuditNotFound) {
			writeError(w, http.StatusNotFound, "audit not found")
			return
		}
		s.logger.Warn("deleting audit", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDownloadAudit(w http.ResponseWriter, r *http.Request) {
	auditID := chi.URLParam(r, "auditID")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		writeError(w, http.StatusBadRequest, "format must be text or json")
		return
	}

	rep, err := s.store.Get(r.Context(), auditID)
	if err != nil {
		if errors.Is(err, store.ErrAuditNotFound) {
			writeError(w, http.StatusNotFound, "audit not found")
			return
		}
		s.logger.Warn("getting audit for download", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	var contentType, ext string
	if format == "json" {
		contentType, ext = "application/json", "json"
		err = report.WriteJSON(&buf, rep)
	} else {
		contentType, ext = "text/plain; charset=utf-8", "txt"
		err = report.WriteText(&buf, rep)
	}
	if err != nil {
		s.logger.Warn("rendering audit download", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", filepath.Base("audit-"+auditID+"."+ext)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Jobs (REST)

func (s *Server) handleStartAuditJob(w http.ResponseWriter, r *http.Request) {
	body, err := decodeAuditRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The job must outlive this request.
	job, err := s.orchestrator.StartAuditJob(context.Background(), body.URL, body.Depth)
	if err != nil {
		s.logger.Warn("starting audit job", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("started audit job",
		logging.Field{Key: "job_id", Value: job.ID},
		logging.Field{Key: "url", Value: body.URL},
		logging.Field{Key: "depth", Value: body.Depth})
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	s.orchestrator.CancelJob(jobID)
	s.logger.Info("canceled job", logging.Field{Key: "job_id", Value: jobID})
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.orchestrator.ListJobs()
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WebSocket

func (s *Server) handleAuditWS(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "missing url query parameter")
		return
	}
	depth := minAuditDepth
	if ds := r.URL.Query().Get("depth"); ds != "" {
		if v, err := strconv.Atoi(ds); err == nil && v >= minAuditDepth && v <= maxAuditDepth {
			depth = v
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	job, err := s.orchestrator.StartAuditJob(context.Background(), rawURL, depth)
	if err != nil {
		_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
		return
	}

	s.logger.Info("started audit job over websocket", logging.Field{Key: "job_id", Value: job.ID})
	_ = conn.WriteJSON(job)

	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; cancel job
			s.orchestrator.CancelJob(job.ID)
			return
		}
	}

	// Final state, including the report when the job succeeded.
	if j := s.orchestrator.GetJob(job.ID); j != nil {
		_ = conn.WriteJSON(j)
	}
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}

// Package server exposes the questionnaires and the report arbiter over
// HTTP as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/abhisek/mindscope/internal/arbiter"
	"github.com/abhisek/mindscope/internal/assessment"
	"github.com/abhisek/mindscope/internal/llm"
	"github.com/abhisek/mindscope/internal/questionbank"
)

const maxBodyBytes = 1 << 20

// Resolver settles a report for a set of answers.
type Resolver interface {
	Resolve(ctx context.Context, topic string, responses []assessment.Response) arbiter.Verdict
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	bank     *questionbank.Bank
	resolver Resolver
	remote   bool
	logger   *slog.Logger
}

// New creates a Handler. remoteEnabled is reported by /healthz only.
func New(bank *questionbank.Bank, resolver Resolver, remoteEnabled bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{bank: bank, resolver: resolver, remote: remoteEnabled, logger: logger}
}

// Router builds the chi router with middleware and all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	h.Routes(r)
	return r
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/topics", h.handleTopics)
		r.Get("/topics/{topic}/questions", h.handleQuestions)
		r.Post("/assessments", h.handleAssessment)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "remote": h.remote})
}

func (h *Handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.bank.Topics())
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	topic, err := url.PathUnescape(chi.URLParam(r, "topic"))
	if err != nil || strings.TrimSpace(topic) == "" {
		writeError(w, http.StatusBadRequest, "invalid topic")
		return
	}

	count := questionbank.DefaultCount
	if s := r.URL.Query().Get("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}

	writeJSON(w, http.StatusOK, h.bank.Pick(topic, count))
}

// AssessmentRequest is the body of POST /api/assessments.
type AssessmentRequest struct {
	Topic     string                `json:"topic"`
	Responses []assessment.Response `json:"responses"`
}

func (r AssessmentRequest) validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic is required")
	}
	for i, resp := range r.Responses {
		if resp.Score < assessment.MinOptionScore || resp.Score > assessment.MaxOptionScore {
			return fmt.Errorf("responses[%d]: score %d outside [%d, %d]",
				i, resp.Score, assessment.MinOptionScore, assessment.MaxOptionScore)
		}
	}
	return nil
}

func (h *Handler) handleAssessment(w http.ResponseWriter, r *http.Request) {
	var req AssessmentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := uuid.NewString()
	ctx := llm.WithSession(r.Context(), sessionID)
	v := h.resolver.Resolve(ctx, strings.TrimSpace(req.Topic), req.Responses)

	w.Header().Set("X-Session-ID", sessionID)
	w.Header().Set("X-Resolution", string(v.Resolution))
	writeJSON(w, http.StatusOK, v.Result)
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

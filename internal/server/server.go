// Package server exposes the comparison engine over HTTP. The server is a
// thin collaborator: it marshals JSON in and out and maps the engine's error
// taxonomy to status codes; all logic lives in the engine.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/karimaz/switchcalc/internal/compare"
	"github.com/karimaz/switchcalc/internal/domain"
)

type handler struct {
	logger       *zap.Logger
	engine       *compare.Engine
	maxBodyBytes int64
}

// NewHandler constructs the HTTP handler serving the comparison API.
func NewHandler(logger *zap.Logger, engine *compare.Engine, maxBodyBytes int64) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	h := &handler{logger: logger, engine: engine, maxBodyBytes: maxBodyBytes}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/healthz", h.handleHealth)
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req domain.ComparisonRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		h.respondError(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON: " + err.Error()})
		return
	}

	result, err := h.engine.Compare(r.Context(), &req)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			h.respondError(w, http.StatusUnprocessableEntity, errorResponse{Error: vErr.Message, Field: vErr.Field})
			return
		}
		var cErr *domain.ComputationError
		if errors.As(err, &cErr) {
			h.logger.Error("comparison failed", zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, errorResponse{Error: cErr.Error()})
			return
		}
		h.logger.Error("comparison failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	h.logger.Info("comparison served",
		zap.Int("horizon_months", result.HorizonMonths),
		zap.Int("scenarios", len(result.Scenarios)),
		zap.String("recommendation", result.Summary.Recommendation),
		zap.Duration("duration", time.Since(start)))

	h.respondJSON(w, http.StatusOK, result)
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondError(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, resp errorResponse) {
	h.respondJSON(w, status, resp)
}

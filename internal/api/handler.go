package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/fridayfun/internal/questiongen"
	"github.com/abhisek/fridayfun/internal/session"
)

// Session is the command surface of the session loop.
type Session interface {
	SelectCategory(ctx context.Context, cat questiongen.Category) (session.Snapshot, error)
	Regenerate(ctx context.Context) (session.Snapshot, error)
	Snapshot(ctx context.Context) (session.Snapshot, error)
}

// Handler serves the question endpoints.
type Handler struct {
	session Session
	logger  *zap.Logger
}

// NewHandler creates a handler backed by s.
func NewHandler(s Session, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{session: s, logger: logger}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Categories handles GET /v1/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, questiongen.Categories())
}

// State handles GET /v1/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Snapshot(r.Context())
	if err != nil {
		h.sessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// Select handles POST /v1/categories/{category}/select
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	cat, err := questiongen.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.session.SelectCategory(r.Context(), cat)
	if err != nil {
		h.sessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, snap)
}

// Regenerate handles POST /v1/regenerate
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Regenerate(r.Context())
	if err != nil {
		h.sessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, snap)
}

func (h *Handler) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	h.logger.Error("session unavailable", zap.Error(err))
	h.writeError(w, http.StatusServiceUnavailable, "session unavailable")
}

// writeJSON sends data with the given status. The header is already out
// when encoding fails, so the failure can only be logged.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("write response", zap.Int("status", status), zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

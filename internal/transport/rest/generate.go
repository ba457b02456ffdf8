package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/hangyeol/internal/service/generation"
)

type generationService interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// GenerateHandler serves validated sentence generation.
type GenerateHandler struct {
	svc     generationService
	maxBody int64
	log     *slog.Logger
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(svc generationService, maxBody int64, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{svc: svc, maxBody: maxBody, log: logger.With("handler", "generate")}
}

// Generate handles POST /api/generate. An exhausted run still answers 200
// with the last candidate and a warning.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generation.Request
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, generation.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

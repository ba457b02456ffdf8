package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/hangyeol/internal/lexicon"
	"github.com/heartmarshall/hangyeol/pkg/ctxutil"
)

type lexiconRegistry interface {
	Current() *lexicon.Store
	Load(ctx context.Context) error
}

// LexiconAdminHandler serves operator endpoints for the reference tables.
type LexiconAdminHandler struct {
	registry lexiconRegistry
	log      *slog.Logger
}

// NewLexiconAdminHandler creates a LexiconAdminHandler.
func NewLexiconAdminHandler(registry lexiconRegistry, logger *slog.Logger) *LexiconAdminHandler {
	return &LexiconAdminHandler{registry: registry, log: logger.With("handler", "lexicon_admin")}
}

type reloadResponse struct {
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Stats    lexicon.Stats `json:"stats"`
	Duration string        `json:"duration"`
}

// Reload handles POST /admin/lexicon/reload. A failed rebuild keeps the
// previous tables and answers 502 with the load error.
func (h *LexiconAdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	operator, _ := ctxutil.OperatorFromCtx(r.Context())
	start := time.Now()

	err := h.registry.Load(r.Context())
	resp := reloadResponse{
		Status:   "ok",
		Stats:    h.registry.Current().Stats(),
		Duration: time.Since(start).String(),
	}
	if err != nil {
		h.log.WarnContext(r.Context(), "lexicon reload failed",
			slog.String("operator", operator),
			slog.String("error", err.Error()),
		)
		resp.Status = "failed"
		resp.Error = err.Error()
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	h.log.InfoContext(r.Context(), "lexicon reloaded",
		slog.String("operator", operator),
		slog.Int("word_rows", resp.Stats.WordRows),
		slog.Int("grammar_rows", resp.Stats.GrammarRows),
	)
	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /admin/lexicon/stats.
func (h *LexiconAdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	store := h.registry.Current()
	resp := reloadResponse{Status: "ok", Stats: store.Stats()}
	if err := store.Err(); err != nil {
		resp.Status = "down"
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

package rest

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/lexicon"
)

type storeProvider interface {
	Current() *lexicon.Store
}

// maxSearchLimit bounds the limit query parameter.
const maxSearchLimit = 50

// SearchHandler serves lexicon lookups.
type SearchHandler struct {
	lexicon storeProvider
	log     *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(lex storeProvider, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{lexicon: lex, log: logger.With("handler", "search")}
}

type searchResponse struct {
	Query   string                 `json:"query"`
	Type    lexicon.SearchKind     `json:"type"`
	Results []lexicon.SearchResult `json:"results"`
}

// Search handles GET /api/search?q=&type=word|grammar&limit=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	kind := lexicon.SearchKind(r.URL.Query().Get("type"))
	if kind == "" {
		kind = lexicon.SearchWord
	}
	if !kind.IsValid() {
		writeError(w, http.StatusBadRequest, "type must be word or grammar")
		return
	}

	limit := lexicon.DefaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSearchLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	store := h.lexicon.Current()
	if !store.Ready() {
		writeError(w, http.StatusServiceUnavailable, "lexicon not ready")
		return
	}

	results := store.Search(q, kind, limit)
	if results == nil {
		results = []lexicon.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Type: kind, Results: results})
}

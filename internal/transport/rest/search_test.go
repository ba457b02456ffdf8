package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/lexicon"
)

func loadedRegistry(t *testing.T) *lexicon.Registry {
	t.Helper()
	reg := lexicon.NewRegistry(lexicon.MemorySource{
		Words: []domain.WordRecord{
			{Surface: "사과", POS: "명사", Level: "1급", UID: "100", Gloss: "과일"},
			{Surface: "사과하다", POS: "동사", Level: "3급", UID: "101", Gloss: "잘못을 빌다"},
			{Surface: "바나나", POS: "명사", Level: "2급", UID: "102"},
		},
		Grammar: []domain.GrammarRecord{
			{Canonical: "-는데", Class: "연결어미", Level: "2급", UID: "200"},
		},
	}, nil, discardLogger())
	require.NoError(t, reg.Load(context.Background()))
	return reg
}

func TestSearchHandler_Words(t *testing.T) {
	t.Parallel()

	h := NewSearchHandler(loadedRegistry(t), discardLogger())

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=사과", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[searchResponse](t, rec)
	assert.Equal(t, lexicon.SearchWord, got.Type)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "100", got.Results[0].UID)
	assert.Equal(t, "101", got.Results[1].UID)
}

func TestSearchHandler_GrammarAndLimit(t *testing.T) {
	t.Parallel()

	h := NewSearchHandler(loadedRegistry(t), discardLogger())

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=-는데&type=grammar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[searchResponse](t, rec)
	require.Len(t, got.Results, 1)
	assert.Equal(t, lexicon.SearchGrammar, got.Results[0].Kind)

	rec = httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=사과&limit=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[searchResponse](t, rec).Results, 1)
}

func TestSearchHandler_NoMatchIsEmptyList(t *testing.T) {
	t.Parallel()

	h := NewSearchHandler(loadedRegistry(t), discardLogger())

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=자동차", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"query":"자동차","type":"word","results":[]}`, rec.Body.String())
}

func TestSearchHandler_BadRequests(t *testing.T) {
	t.Parallel()

	h := NewSearchHandler(loadedRegistry(t), discardLogger())

	for _, target := range []string{
		"/api/search",
		"/api/search?q=%20",
		"/api/search?q=사과&type=idiom",
		"/api/search?q=사과&limit=0",
		"/api/search?q=사과&limit=abc",
		"/api/search?q=사과&limit=51",
	} {
		rec := httptest.NewRecorder()
		h.Search(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestSearchHandler_NotReady(t *testing.T) {
	t.Parallel()

	reg := lexicon.NewRegistry(nil, nil, discardLogger())
	require.Error(t, reg.Load(context.Background()))
	h := NewSearchHandler(reg, discardLogger())

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=사과", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLexiconAdminHandler_Reload(t *testing.T) {
	t.Parallel()

	store := loadedRegistry(t).Current()
	reg := &lexiconRegistryMock{
		CurrentFunc: func() *lexicon.Store { return store },
		LoadFunc:    func(ctx context.Context) error { return nil },
	}
	h := NewLexiconAdminHandler(reg, discardLogger())

	rec := httptest.NewRecorder()
	h.Reload(rec, httptest.NewRequest(http.MethodPost, "/admin/lexicon/reload", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[reloadResponse](t, rec)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, 3, got.Stats.WordRows)
	assert.Equal(t, 1, got.Stats.GrammarRows)
	assert.Len(t, reg.LoadCalls(), 1)
}

func TestLexiconAdminHandler_ReloadFailureKeepsStats(t *testing.T) {
	t.Parallel()

	store := loadedRegistry(t).Current()
	reg := &lexiconRegistryMock{
		CurrentFunc: func() *lexicon.Store { return store },
		LoadFunc:    func(ctx context.Context) error { return errors.New("open word.csv: no such file") },
	}
	h := NewLexiconAdminHandler(reg, discardLogger())

	rec := httptest.NewRecorder()
	h.Reload(rec, httptest.NewRequest(http.MethodPost, "/admin/lexicon/reload", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	got := decodeBody[reloadResponse](t, rec)
	assert.Equal(t, "failed", got.Status)
	assert.Contains(t, got.Error, "word.csv")
	assert.Equal(t, 3, got.Stats.WordRows, "previous tables stay active")
}

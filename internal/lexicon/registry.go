package lexicon

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Registry owns the current Store and rebuilds it on demand. Readers always
// see a fully built store; a failed rebuild keeps the previous one.
type Registry struct {
	src Source
	tok Tokenizer
	log *slog.Logger

	current atomic.Pointer[Store]
	loadMu  sync.Mutex
}

// NewRegistry creates a registry with no store loaded.
func NewRegistry(src Source, tok Tokenizer, logger *slog.Logger) *Registry {
	return &Registry{
		src: src,
		tok: tok,
		log: logger.With("component", "lexicon_registry"),
	}
}

// Current returns the active store. Before the first Load it returns a
// store that is not ready.
func (r *Registry) Current() *Store {
	if s := r.current.Load(); s != nil {
		return s
	}
	return failed(errNotLoaded)
}

// Load builds a new store from the source. The result replaces the current
// store when it is ready or when nothing was loaded before.
func (r *Registry) Load(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	s := Build(ctx, r.src, r.tok, r.log)
	prev := r.current.Load()
	if s.Ready() || prev == nil {
		r.current.Store(s)
	}
	if err := s.Err(); err != nil {
		if prev != nil {
			r.log.Warn("lexicon reload failed, keeping previous tables", slog.String("error", err.Error()))
		}
		return err
	}
	return nil
}

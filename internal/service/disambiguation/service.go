// Package disambiguation asks a language model to choose among homograph
// candidates that the lexicon could not tell apart.
package disambiguation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

// Diagnostic returned in place of a raw reply when no model is configured.
const NotConfigured = "AI 미사용"

// Decisions maps an item position (or its word) to the chosen uid.
type Decisions = map[string]string

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service resolves a sentence's ambiguous items in one model call.
type Service struct {
	llm completer
	log *slog.Logger
}

// NewService creates the resolver. A nil llm makes every call a no-op.
func NewService(logger *slog.Logger, llm completer) *Service {
	return &Service{
		llm: llm,
		log: logger.With("service", "disambiguation"),
	}
}

// Resolve returns the model's decisions plus its raw reply for diagnostics.
// Failures never propagate: they yield an empty decision set and a
// diagnostic string.
func (s *Service) Resolve(ctx context.Context, sentence string, items []domain.AmbiguousItem) (Decisions, string) {
	if len(items) == 0 {
		return Decisions{}, ""
	}
	if s.llm == nil {
		return Decisions{}, NotConfigured
	}

	raw, err := s.llm.Complete(ctx, BuildPrompt(sentence, items))
	if err != nil {
		s.log.WarnContext(ctx, "oracle call failed",
			slog.Int("items", len(items)),
			slog.String("error", err.Error()),
		)
		return Decisions{}, fmt.Sprintf("Error: %v", err)
	}

	decisions, err := ParseDecisions(raw)
	if err != nil {
		s.log.WarnContext(ctx, "oracle reply unparsable", slog.String("error", err.Error()))
		return Decisions{}, fmt.Sprintf("Error: %v | Raw: %s", err, raw)
	}
	return decisions, raw
}

// Package analysis grades sentences end to end: tokenization, annotation,
// statistics and highlight segmentation.
package analysis

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/lexicon"
	"github.com/heartmarshall/hangyeol/internal/service/profiler"
)

type storeProvider interface {
	Current() *lexicon.Store
}

type tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]domain.Token, error)
}

// Result is the full grading outcome for one sentence.
type Result struct {
	Sentence   string                  `json:"sentence"`
	Grade      int                     `json:"grade"`
	GradeLabel string                  `json:"grade_label"`
	Message    string                  `json:"message,omitempty"`
	Stats      GradeStats              `json:"stats"`
	Chart      ChartData               `json:"chart"`
	Items      []domain.AnnotationItem `json:"items"`
	Segments   []Span                  `json:"segments"`
	Trace      []string                `json:"trace"`
}

// Service grades sentences against the currently loaded lexicon.
type Service struct {
	lexicon  storeProvider
	tok      tokenizer
	profiler *profiler.Profiler
	log      *slog.Logger
}

// NewService creates the grading service. A nil tokenizer makes every call
// fail with domain.ErrTokenizerUnavailable.
func NewService(logger *slog.Logger, lex storeProvider, tok tokenizer, p *profiler.Profiler) *Service {
	return &Service{
		lexicon:  lex,
		tok:      tok,
		profiler: p,
		log:      logger.With("service", "analysis"),
	}
}

// Grade tokenizes and annotates one sentence.
//
// Returns domain.ErrNotReady when no lexicon is loaded,
// domain.ErrTokenizerUnavailable when the analyzer cannot be reached and
// domain.ErrTokenization when it rejects this sentence.
func (s *Service) Grade(ctx context.Context, sentence string) (*Result, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return nil, domain.NewValidationError("sentence", "required")
	}

	store := s.lexicon.Current()
	if !store.Ready() {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotReady, store.Err())
	}
	if s.tok == nil {
		return nil, domain.ErrTokenizerUnavailable
	}

	tokens, err := s.tok.Tokenize(ctx, sentence)
	if err != nil {
		if errors.Is(err, domain.ErrTokenizerUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Kiwi 분석 오류: %v", domain.ErrTokenization, err)
	}

	prof := s.profiler.Profile(ctx, store, sentence, tokens)
	stats := ComputeStats(prof.Items)

	res := &Result{
		Sentence:   sentence,
		Grade:      prof.MaxLevel,
		GradeLabel: domain.FormatGrade(prof.MaxLevel),
		Stats:      stats,
		Chart:      stats.Chart(),
		Items:      prof.Items,
		Segments:   Segment(sentence, prof.Items),
		Trace:      prof.Trace,
	}
	if res.Items == nil {
		res.Items = []domain.AnnotationItem{}
	}
	if res.Trace == nil {
		res.Trace = []string{}
	}

	s.log.InfoContext(ctx, "sentence graded",
		slog.Int("tokens", len(tokens)),
		slog.Int("items", len(res.Items)),
		slog.String("grade", res.GradeLabel),
	)
	return res, nil
}

// Failure converts a user-facing grading error into a sentinel result. ok
// is false for errors that must be reported as failures.
func Failure(sentence string, err error) (res *Result, ok bool) {
	label, msg, ok := domain.UserMessage(err)
	if !ok {
		return nil, false
	}
	return &Result{
		Sentence:   strings.TrimSpace(sentence),
		GradeLabel: label,
		Message:    msg,
		Items:      []domain.AnnotationItem{},
		Trace:      []string{},
	}, true
}

// GradeText grades every non-empty line of text. A line the analyzer
// rejects yields a sentinel result; errors that make the whole engine
// unusable abort the run.
func (s *Service) GradeText(ctx context.Context, text string) ([]*Result, error) {
	var out []*Result
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := s.Grade(ctx, line)
		if err != nil {
			if errors.Is(err, domain.ErrTokenization) {
				res, _ = Failure(line, err)
				out = append(out, res)
				continue
			}
			return nil, err
		}
		out = append(out, res)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return out, nil
}

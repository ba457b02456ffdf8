// Package generation produces practice sentences with a language model and
// keeps only those whose graded items stay within the requested level.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/service/analysis"
)

const (
	// GradeAll disables level validation.
	GradeAll = "all"

	DefaultMaxAttempts = 5
	defaultTargetGrade = 6
)

// ErrNotConfigured is returned when no language model is available.
var ErrNotConfigured = errors.New("generation model not configured")

// errViolation marks an attempt rejected for exceeding the target level.
var errViolation = errors.New("level violation")

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type grader interface {
	Grade(ctx context.Context, sentence string) (*analysis.Result, error)
}

// Request describes the sentence to generate.
type Request struct {
	Grades  []string `json:"grades"`
	Keyword string   `json:"keyword"`
	Hint    string   `json:"hint"`
}

// Validate checks that every grade is "all" or 1..6.
func (r Request) Validate() error {
	var errs []domain.FieldError
	for _, g := range r.Grades {
		if g == GradeAll {
			continue
		}
		if n, err := strconv.Atoi(g); err != nil || n < 1 || n > defaultTargetGrade {
			errs = append(errs, domain.FieldError{Field: "grades", Message: fmt.Sprintf("invalid grade %q", g)})
		}
	}
	if len(r.Keyword) > 100 {
		errs = append(errs, domain.FieldError{Field: "keyword", Message: "too long"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// target returns the level ceiling and whether it is enforced. The prompt
// level is 0 when the caller gave no explicit grade.
func (r Request) target() (ceiling, promptLevel int, enforce bool) {
	if slices.Contains(r.Grades, GradeAll) {
		return 0, 0, false
	}
	for _, g := range r.Grades {
		if n, err := strconv.Atoi(g); err == nil && n > promptLevel {
			promptLevel = n
		}
	}
	if promptLevel == 0 {
		return defaultTargetGrade, 0, true
	}
	return promptLevel, promptLevel, true
}

// Rejection is a generated sentence that failed validation.
type Rejection struct {
	Sentence string `json:"sentence"`
	Reason   string `json:"reason"`
}

// Result is the outcome of a generation run. When every attempt is
// rejected, Sentence holds the last candidate and Exhausted is set.
type Result struct {
	Sentence   string           `json:"sentence"`
	Analysis   *analysis.Result `json:"analysis,omitempty"`
	Attempts   int              `json:"attempts"`
	Rejections []Rejection      `json:"rejections"`
	Exhausted  bool             `json:"exhausted"`
	Warning    string           `json:"warning,omitempty"`
}

// Service runs the generate-grade-retry loop.
type Service struct {
	llm         completer
	grader      grader
	maxAttempts int
	log         *slog.Logger
}

// NewService creates the generator. maxAttempts <= 0 uses DefaultMaxAttempts.
func NewService(logger *slog.Logger, llm completer, g grader, maxAttempts int) *Service {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Service{
		llm:         llm,
		grader:      g,
		maxAttempts: maxAttempts,
		log:         logger.With("service", "generation"),
	}
}

type attempt struct {
	sentence string
	analysis *analysis.Result
}

// Generate asks the model for sentences until one passes validation or the
// attempt ceiling is reached. Words that broke the ceiling are forbidden in
// later prompts.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, ErrNotConfigured
	}

	ceiling, promptLevel, enforce := req.target()
	res := &Result{Rejections: []Rejection{}}
	var (
		forbidden []string
		last      attempt
		fatal     error
	)

	policy := retrypolicy.Builder[attempt]().
		HandleErrors(errViolation).
		WithMaxRetries(s.maxAttempts - 1).
		Build()

	accepted, err := failsafe.Get(func() (attempt, error) {
		if err := ctx.Err(); err != nil {
			fatal = err
			return attempt{}, err
		}
		res.Attempts++

		reply, err := s.llm.Complete(ctx, buildPrompt(promptLevel, req.Keyword, req.Hint, forbidden))
		if err != nil {
			fatal = fmt.Errorf("generate sentence: %w", err)
			return attempt{}, fatal
		}
		a := attempt{sentence: cleanReply(reply)}
		last = a

		graded, err := s.grader.Grade(ctx, a.sentence)
		if err != nil {
			if !errors.Is(err, domain.ErrTokenization) {
				fatal = fmt.Errorf("grade generated sentence: %w", err)
				return attempt{}, fatal
			}
			res.Rejections = append(res.Rejections, Rejection{Sentence: a.sentence, Reason: domain.GradeLabelError})
			return a, errViolation
		}
		a.analysis = graded
		last = a

		if !enforce {
			return a, nil
		}
		words := violations(graded.Items, ceiling)
		if len(words) == 0 {
			return a, nil
		}
		for _, item := range graded.Items {
			if exceeds(item, ceiling) && !slices.Contains(forbidden, item.Form) {
				forbidden = append(forbidden, item.Form)
			}
		}
		res.Rejections = append(res.Rejections, Rejection{
			Sentence: a.sentence,
			Reason:   "등급 초과 단어 발견: " + strings.Join(words, ", "),
		})
		s.log.DebugContext(ctx, "generated sentence rejected",
			slog.Int("attempt", res.Attempts),
			slog.Int("ceiling", ceiling),
			slog.String("words", strings.Join(words, ", ")),
		)
		return a, errViolation
	}, policy)

	if fatal != nil {
		return nil, fatal
	}
	if err != nil {
		res.Sentence = last.sentence
		res.Analysis = last.analysis
		res.Exhausted = true
		res.Warning = domain.ErrGenerationExhausted.Error()
		s.log.WarnContext(ctx, "generation attempts exhausted",
			slog.Int("attempts", res.Attempts),
			slog.Int("ceiling", ceiling),
		)
		return res, nil
	}

	res.Sentence = accepted.sentence
	res.Analysis = accepted.analysis
	s.log.InfoContext(ctx, "sentence generated",
		slog.Int("attempts", res.Attempts),
		slog.Int("rejections", len(res.Rejections)),
	)
	return res, nil
}

func exceeds(item domain.AnnotationItem, ceiling int) bool {
	if !strings.Contains(item.Level, domain.LevelSuffix) {
		return false
	}
	g, ok := domain.ParseGrade(item.Level)
	return ok && g > ceiling
}

// violations lists "form(level)" for every item above ceiling.
func violations(items []domain.AnnotationItem, ceiling int) []string {
	var out []string
	for _, item := range items {
		if exceeds(item, ceiling) {
			out = append(out, fmt.Sprintf("%s(%s)", item.Form, item.Level))
		}
	}
	return out
}

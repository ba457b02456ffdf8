package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/service/analysis"
)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// sequenceLLM replies with the given sentences in order, repeating the last.
func sequenceLLM(replies ...string) *completerMock {
	n := 0
	return &completerMock{CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
		r := replies[min(n, len(replies)-1)]
		n++
		return r, nil
	}}
}

// levelGrader grades each known sentence as one item per form/level pair.
func levelGrader(levels map[string][][2]string) *graderMock {
	return &graderMock{GradeFunc: func(ctx context.Context, sentence string) (*analysis.Result, error) {
		pairs, ok := levels[sentence]
		if !ok {
			return nil, fmt.Errorf("%w: unknown sentence %q", domain.ErrTokenization, sentence)
		}
		res := &analysis.Result{Sentence: sentence}
		for _, p := range pairs {
			res.Items = append(res.Items, domain.AnnotationItem{Form: p[0], Level: p[1]})
		}
		return res, nil
	}}
}

func TestGenerate_FirstAttemptAccepted(t *testing.T) {
	t.Parallel()

	llm := sequenceLLM(`  **"사과를 먹어요."**  `)
	g := levelGrader(map[string][][2]string{"사과를 먹어요.": {{"사과", "1급"}, {"먹", "1급"}}})
	svc := NewService(discardLogger(), llm, g, 0)

	res, err := svc.Generate(context.Background(), Request{Grades: []string{"1", "2"}, Keyword: "사과"})
	require.NoError(t, err)

	assert.Equal(t, "사과를 먹어요.", res.Sentence)
	assert.Equal(t, 1, res.Attempts)
	assert.Empty(t, res.Rejections)
	assert.False(t, res.Exhausted)
	require.NotNil(t, res.Analysis)

	prompt := llm.CompleteCalls()[0].Prompt
	assert.Contains(t, prompt, "TOPIK 2급 이하")
	assert.Contains(t, prompt, "기초적인 생활 어휘")
	assert.Contains(t, prompt, "필수 포함 단어: '사과'")
}

func TestGenerate_RetriesWithForbiddenWords(t *testing.T) {
	t.Parallel()

	llm := sequenceLLM("정치가 어려워요.", "공부가 어려워요.")
	g := levelGrader(map[string][][2]string{
		"정치가 어려워요.": {{"정치", "4급"}, {"어렵", "2급"}},
		"공부가 어려워요.": {{"공부", "1급"}, {"어렵", "2급"}},
	})
	svc := NewService(discardLogger(), llm, g, 5)

	res, err := svc.Generate(context.Background(), Request{Grades: []string{"2"}})
	require.NoError(t, err)

	assert.Equal(t, "공부가 어려워요.", res.Sentence)
	assert.Equal(t, 2, res.Attempts)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, "정치가 어려워요.", res.Rejections[0].Sentence)
	assert.Equal(t, "등급 초과 단어 발견: 정치(4급)", res.Rejections[0].Reason)

	calls := llm.CompleteCalls()
	require.Len(t, calls, 2)
	assert.NotContains(t, calls[0].Prompt, "사용 금지")
	assert.Contains(t, calls[1].Prompt, "절대 사용 금지 단어: 정치")
}

func TestGenerate_ExhaustedReturnsLastSentence(t *testing.T) {
	t.Parallel()

	llm := sequenceLLM("정치가 어려워요.", "경제가 어려워요.", "민주주의가 어려워요.")
	g := levelGrader(map[string][][2]string{
		"정치가 어려워요.":   {{"정치", "4급"}},
		"경제가 어려워요.":   {{"경제", "3급"}},
		"민주주의가 어려워요.": {{"민주주의", "5급"}},
	})
	svc := NewService(discardLogger(), llm, g, 3)

	res, err := svc.Generate(context.Background(), Request{Grades: []string{"1"}})
	require.NoError(t, err, "exhaustion is reported in the result")

	assert.True(t, res.Exhausted)
	assert.Equal(t, domain.ErrGenerationExhausted.Error(), res.Warning)
	assert.Equal(t, "민주주의가 어려워요.", res.Sentence)
	assert.Equal(t, 3, res.Attempts)
	assert.Len(t, res.Rejections, 3)
	assert.Contains(t, llm.CompleteCalls()[2].Prompt, "정치, 경제")
}

func TestGenerate_AllSkipsValidation(t *testing.T) {
	t.Parallel()

	llm := sequenceLLM("민주주의가 어려워요.")
	g := levelGrader(map[string][][2]string{"민주주의가 어려워요.": {{"민주주의", "5급"}}})
	svc := NewService(discardLogger(), llm, g, 5)

	res, err := svc.Generate(context.Background(), Request{Grades: []string{"1", GradeAll}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Attempts)
	assert.False(t, res.Exhausted)
	assert.Contains(t, llm.CompleteCalls()[0].Prompt, "자연스러운 한국어 문장")
}

func TestGenerate_DefaultCeilingIsSix(t *testing.T) {
	t.Parallel()

	llm := sequenceLLM("민주주의가 어려워요.")
	g := levelGrader(map[string][][2]string{"민주주의가 어려워요.": {{"민주주의", "6급"}, {"없음", "-"}}})
	res, err := NewService(discardLogger(), llm, g, 5).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Attempts)
}

func TestGenerate_TokenizationFailureRetries(t *testing.T) {
	t.Parallel()

	llm := sequenceLLM("???", "사과예요.")
	g := levelGrader(map[string][][2]string{"사과예요.": {{"사과", "1급"}}})
	res, err := NewService(discardLogger(), llm, g, 5).Generate(context.Background(), Request{Grades: []string{"1"}})
	require.NoError(t, err)
	assert.Equal(t, "사과예요.", res.Sentence)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, domain.GradeLabelError, res.Rejections[0].Reason)
}

func TestGenerate_LLMErrorAborts(t *testing.T) {
	t.Parallel()

	llm := &completerMock{CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("overloaded")
	}}
	g := levelGrader(nil)
	_, err := NewService(discardLogger(), llm, g, 5).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
	assert.Len(t, llm.CompleteCalls(), 1)
	assert.Empty(t, g.GradeCalls())
}

func TestGenerate_EngineNotReadyAborts(t *testing.T) {
	t.Parallel()

	g := &graderMock{GradeFunc: func(ctx context.Context, sentence string) (*analysis.Result, error) {
		return nil, domain.ErrNotReady
	}}
	_, err := NewService(discardLogger(), sequenceLLM("사과예요."), g, 5).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestGenerate_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := NewService(discardLogger(), nil, levelGrader(nil), 5).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerate_InvalidGrades(t *testing.T) {
	t.Parallel()

	llm := sequenceLLM("x")
	_, err := NewService(discardLogger(), llm, levelGrader(nil), 5).Generate(context.Background(), Request{Grades: []string{"7", "abc"}})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)
	assert.Empty(t, llm.CompleteCalls())
}

func TestBuildPrompt_Tiers(t *testing.T) {
	t.Parallel()

	assert.Contains(t, buildPrompt(3, "", "", nil), "중급 어휘")
	assert.Contains(t, buildPrompt(5, "", "", nil), "고급 어휘")
	assert.Contains(t, buildPrompt(1, "눈", "겨울", nil), "(문맥 힌트: 겨울)")
	assert.NotContains(t, buildPrompt(1, "", "겨울", nil), "문맥 힌트")
}

func TestCleanReply(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "사과예요.", cleanReply("  **“사과예요.”**\n"))
}

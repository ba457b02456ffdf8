package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/hangyeol/internal/lexicon"
	"github.com/heartmarshall/hangyeol/internal/service/analysis"
	"github.com/heartmarshall/hangyeol/internal/service/generation"
)

var (
	_ gradeService      = &gradeServiceMock{}
	_ generationService = &generationServiceMock{}
	_ lexiconRegistry   = &lexiconRegistryMock{}
)

type gradeServiceMock struct {
	GradeFunc     func(ctx context.Context, sentence string) (*analysis.Result, error)
	GradeTextFunc func(ctx context.Context, text string) ([]*analysis.Result, error)

	calls struct {
		Grade     []struct{ Sentence string }
		GradeText []struct{ Text string }
	}
	lockGrade     sync.RWMutex
	lockGradeText sync.RWMutex
}

func (mock *gradeServiceMock) Grade(ctx context.Context, sentence string) (*analysis.Result, error) {
	if mock.GradeFunc == nil {
		panic("gradeServiceMock.GradeFunc: method is nil but gradeService.Grade was just called")
	}
	mock.lockGrade.Lock()
	mock.calls.Grade = append(mock.calls.Grade, struct{ Sentence string }{sentence})
	mock.lockGrade.Unlock()
	return mock.GradeFunc(ctx, sentence)
}

func (mock *gradeServiceMock) GradeCalls() []struct{ Sentence string } {
	mock.lockGrade.RLock()
	defer mock.lockGrade.RUnlock()
	return mock.calls.Grade
}

func (mock *gradeServiceMock) GradeText(ctx context.Context, text string) ([]*analysis.Result, error) {
	if mock.GradeTextFunc == nil {
		panic("gradeServiceMock.GradeTextFunc: method is nil but gradeService.GradeText was just called")
	}
	mock.lockGradeText.Lock()
	mock.calls.GradeText = append(mock.calls.GradeText, struct{ Text string }{text})
	mock.lockGradeText.Unlock()
	return mock.GradeTextFunc(ctx, text)
}

func (mock *gradeServiceMock) GradeTextCalls() []struct{ Text string } {
	mock.lockGradeText.RLock()
	defer mock.lockGradeText.RUnlock()
	return mock.calls.GradeText
}

type generationServiceMock struct {
	GenerateFunc func(ctx context.Context, req generation.Request) (*generation.Result, error)

	calls struct {
		Generate []struct{ Req generation.Request }
	}
	lockGenerate sync.RWMutex
}

func (mock *generationServiceMock) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	if mock.GenerateFunc == nil {
		panic("generationServiceMock.GenerateFunc: method is nil but generationService.Generate was just called")
	}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, struct{ Req generation.Request }{req})
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, req)
}

func (mock *generationServiceMock) GenerateCalls() []struct{ Req generation.Request } {
	mock.lockGenerate.RLock()
	defer mock.lockGenerate.RUnlock()
	return mock.calls.Generate
}

type lexiconRegistryMock struct {
	CurrentFunc func() *lexicon.Store
	LoadFunc    func(ctx context.Context) error

	calls struct {
		Load []struct{ Ctx context.Context }
	}
	lockLoad sync.RWMutex
}

func (mock *lexiconRegistryMock) Current() *lexicon.Store {
	if mock.CurrentFunc == nil {
		panic("lexiconRegistryMock.CurrentFunc: method is nil but lexiconRegistry.Current was just called")
	}
	return mock.CurrentFunc()
}

func (mock *lexiconRegistryMock) Load(ctx context.Context) error {
	if mock.LoadFunc == nil {
		panic("lexiconRegistryMock.LoadFunc: method is nil but lexiconRegistry.Load was just called")
	}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, struct{ Ctx context.Context }{ctx})
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx)
}

func (mock *lexiconRegistryMock) LoadCalls() []struct{ Ctx context.Context } {
	mock.lockLoad.RLock()
	defer mock.lockLoad.RUnlock()
	return mock.calls.Load
}

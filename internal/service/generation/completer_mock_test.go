package generation

import (
	"context"
	"sync"

	"github.com/heartmarshall/hangyeol/internal/service/analysis"
)

var _ completer = &completerMock{}

type completerMock struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	calls struct {
		Complete []struct {
			Prompt string
		}
	}
	lockComplete sync.RWMutex
}

func (mock *completerMock) Complete(ctx context.Context, prompt string) (string, error) {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but completer.Complete was just called")
	}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, struct{ Prompt string }{Prompt: prompt})
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, prompt)
}

func (mock *completerMock) CompleteCalls() []struct{ Prompt string } {
	mock.lockComplete.RLock()
	defer mock.lockComplete.RUnlock()
	return mock.calls.Complete
}

var _ grader = &graderMock{}

type graderMock struct {
	GradeFunc func(ctx context.Context, sentence string) (*analysis.Result, error)

	calls struct {
		Grade []struct {
			Sentence string
		}
	}
	lockGrade sync.RWMutex
}

func (mock *graderMock) Grade(ctx context.Context, sentence string) (*analysis.Result, error) {
	if mock.GradeFunc == nil {
		panic("graderMock.GradeFunc: method is nil but grader.Grade was just called")
	}
	mock.lockGrade.Lock()
	mock.calls.Grade = append(mock.calls.Grade, struct{ Sentence string }{Sentence: sentence})
	mock.lockGrade.Unlock()
	return mock.GradeFunc(ctx, sentence)
}

func (mock *graderMock) GradeCalls() []struct{ Sentence string } {
	mock.lockGrade.RLock()
	defer mock.lockGrade.RUnlock()
	return mock.calls.Grade
}

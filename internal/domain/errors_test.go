package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("sentence", "required")

	if got := err.Error(); got != "validation: sentence: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Errors: []FieldError{
		{Field: "sentence", Message: "required"},
		{Field: "grades", Message: "invalid"},
	}}

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrValidation, ErrUnauthorized, ErrForbidden,
		ErrNotReady, ErrTokenizerUnavailable, ErrTokenization, ErrGenerationExhausted,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantLabel string
		wantMsg   string
		wantOK    bool
	}{
		{"not ready", fmt.Errorf("grade: %w", ErrNotReady), GradeLabelUnavailable, "데이터 로드 실패", true},
		{"no tokenizer", ErrTokenizerUnavailable, GradeLabelUnavailable, "Kiwi 로드 실패", true},
		{"tokenization", fmt.Errorf("%w: timeout", ErrTokenization), GradeLabelError, "tokenization failed: timeout", true},
		{"other", errors.New("boom"), "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			label, msg, ok := UserMessage(tt.err)
			if label != tt.wantLabel || msg != tt.wantMsg || ok != tt.wantOK {
				t.Errorf("UserMessage() = (%q, %q, %v), want (%q, %q, %v)",
					label, msg, ok, tt.wantLabel, tt.wantMsg, tt.wantOK)
			}
		})
	}
}

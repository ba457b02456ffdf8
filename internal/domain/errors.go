package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrNotReady means the lexical store failed to load its reference tables.
	ErrNotReady = errors.New("lexicon not ready")
	// ErrTokenizerUnavailable means no morphological analyzer is configured or reachable.
	ErrTokenizerUnavailable = errors.New("tokenizer unavailable")
	// ErrTokenization is returned when the analyzer fails on a specific sentence.
	ErrTokenization = errors.New("tokenization failed")
	// ErrGenerationExhausted means every generation attempt exceeded the target grade.
	ErrGenerationExhausted = errors.New("generation attempts exhausted")
)

// User-facing grade labels returned instead of a grade.
const (
	GradeLabelUnavailable  = "분석 불가"
	GradeLabelError        = "분석 에러"
	GradeLabelUndetermined = "판별 불가"
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// UserMessage maps an analysis error to the label and message shown to users.
// ok is false for errors that have no user-facing sentinel.
func UserMessage(err error) (label, message string, ok bool) {
	switch {
	case errors.Is(err, ErrNotReady):
		return GradeLabelUnavailable, "데이터 로드 실패", true
	case errors.Is(err, ErrTokenizerUnavailable):
		return GradeLabelUnavailable, "Kiwi 로드 실패", true
	case errors.Is(err, ErrTokenization):
		return GradeLabelError, err.Error(), true
	}
	return "", "", false
}

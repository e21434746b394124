package apperrors

import (
	"errors"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestValidationErrorError(t *testing.T) {
	withField := &ValidationError{Field: "email", Message: "must not be empty"}
	if withField.Error() != "validation failed for field 'email': must not be empty" {
		t.Errorf("unexpected message: %q", withField.Error())
	}

	withoutField := &ValidationError{Message: "bad input"}
	if withoutField.Error() != "validation failed: bad input" {
		t.Errorf("unexpected message: %q", withoutField.Error())
	}
}

func TestNewValidationErrorWrapsSentinel(t *testing.T) {
	err := NewValidationError("dailyRate", "must be non-negative")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected error to wrap ErrValidation, got %v", err)
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected error to unwrap to *ValidationError, got %v", err)
	}
	if vErr.Field != "dailyRate" {
		t.Errorf("expected field 'dailyRate', got %q", vErr.Field)
	}
}

func TestWrapStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapStorageError(cause, "failed to save vehicle snapshot")

	if !errors.Is(err, ErrStorage) {
		t.Errorf("expected error to wrap ErrStorage, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected error to wrap cause, got %v", err)
	}
}

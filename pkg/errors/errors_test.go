package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRequest, "invalid JSON")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeInvalidRequest {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidRequest, err.Code)
	}
	if err.Message != "invalid JSON" {
		t.Errorf("expected message 'invalid JSON', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("engine offline")
	err := Wrap(ErrCodeInternal, "analysis failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]any{
		"engine": "remote",
		"url":    "http://engine:9000",
	}

	err := WrapWithContext(ErrCodeTimeout, "analysis timed out", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["engine"] != "remote" {
		t.Errorf("expected engine to be remote")
	}
}

func TestNewWithFields(t *testing.T) {
	err := NewWithFields(ErrCodeInvalidRequest, "invalid request payload",
		FieldError{Field: "ingredients", Reason: "field required"})

	if len(err.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(err.Fields))
	}
	if err.Fields[0].Field != "ingredients" {
		t.Errorf("expected field ingredients, got %s", err.Fields[0].Field)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
		{
			name: "error with fields",
			err: NewWithFields(ErrCodeInvalidRequest, "invalid request payload",
				FieldError{Field: "ingredients", Reason: "must be a string"},
				FieldError{Field: "preferences", Reason: "must be an object"}),
			expected: "[INVALID_REQUEST] invalid request payload (ingredients: must be a string; preferences: must be an object)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestAs(t *testing.T) {
	base := New(ErrCodeInvalidRequest, "body must be an object")
	wrapped := fmt.Errorf("resolve: %w", base)

	se, ok := As(wrapped)
	if !ok {
		t.Fatal("expected StructuredError in chain")
	}
	if se != base {
		t.Errorf("expected the original error to be returned")
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("expected no StructuredError for plain error")
	}
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid request", New(ErrCodeInvalidRequest, "x"), true},
		{"payload too large", New(ErrCodePayloadTooLarge, "x"), true},
		{"wrapped invalid request", fmt.Errorf("ctx: %w", New(ErrCodeInvalidRequest, "x")), true},
		{"internal", New(ErrCodeInternal, "x"), false},
		{"plain error", errors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClientError(tt.err); got != tt.want {
				t.Errorf("IsClientError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeTimeout, "slow"))
	if !HasCode(err, ErrCodeTimeout) {
		t.Error("expected TIMEOUT code")
	}
	if HasCode(err, ErrCodeInternal) {
		t.Error("did not expect INTERNAL code")
	}
}

package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRenderFailed, cause, "render failed")

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeRenderFailed,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRenderFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeRenderFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDesignMatrix, "test"),
			expected: ErrCodeDesignMatrix,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConvergenceError(t *testing.T) {
	t.Run("too many iterations", func(t *testing.T) {
		var err error = &ConvergenceError{
			Reason:     ErrCodeTooManyIterations,
			Iterations: 20,
			Desired:    Size{Width: 2, Height: 1},
			Last:       Size{Width: 4, Height: 2},
		}
		if !Is(err, ErrCodeTooManyIterations) {
			t.Errorf("Is(err, %v) = false, want true", ErrCodeTooManyIterations)
		}
		var ce *ConvergenceError
		if !errors.As(Wrap(ErrCodeRenderFailed, err, "leaf 0"), &ce) {
			t.Fatal("errors.As did not find *ConvergenceError")
		}
		if ce.Iterations != 20 {
			t.Errorf("Iterations = %d, want 20", ce.Iterations)
		}
	})

	t.Run("below minimum", func(t *testing.T) {
		var err error = &ConvergenceError{Reason: ErrCodeBelowMinimumSize}
		if GetCode(err) != ErrCodeBelowMinimumSize {
			t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeBelowMinimumSize)
		}
	})
}

func TestAllocationError(t *testing.T) {
	cause := &ConvergenceError{Reason: ErrCodeTooManyIterations}
	var err error = &AllocationError{Attempts: 2, Last: Size{Width: 6, Height: 4}, Cause: cause}

	if !Is(err, ErrCodeAllocationExhausted) {
		t.Errorf("Is(err, %v) = false, want true", ErrCodeAllocationExhausted)
	}
	var ae *AllocationError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As did not find *AllocationError")
	}
	if ae.Last != (Size{Width: 6, Height: 4}) {
		t.Errorf("Last = %v, want 6x4", ae.Last)
	}
	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		t.Error("cause is not reachable through Unwrap")
	}
}

package errors

import (
	"math"
	"testing"
)

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 3.5, false},
		{"tiny", 1e-6, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		input   []float64
		wantErr bool
	}{
		{"empty", nil, false},
		{"valid", []float64{1, 2, 0.5}, false},

		{"zero", []float64{1, 0}, true},
		{"negative", []float64{-1}, true},
		{"nan", []float64{math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeights("rel_widths", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeights(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeLayoutMismatch) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeLayoutMismatch)
			}
		})
	}
}

func TestValidateAssetPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "plot.svg", false},
		{"valid nested", "plots/a.dot", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "plots/../../secret", true},
		{"backslash", "plots\\a.dot", true},
		{"null byte", "a\x00b", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRedisURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"redis://localhost:6379/0", false},
		{"rediss://cache.internal:6380", false},
		{"", true},
		{"http://localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateRedisURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedisURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

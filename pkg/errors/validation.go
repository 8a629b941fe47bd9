package errors

import (
	"math"
	"os"
	"strings"
	"unicode"
)

// ValidateLength checks that a length option is a finite, non-negative number.
// The name is used in the error message.
func ValidateLength(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative (got %g)", name, v)
	}
	return nil
}

// ValidateAngle checks that a rotation angle is finite.
func ValidateAngle(name string, deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// ValidateOutputPath checks that path can name an output file.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Path must not name an existing directory
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid control characters")
		}
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return New(ErrCodeInvalidInput, "output path %s is a directory", path)
	}
	return nil
}

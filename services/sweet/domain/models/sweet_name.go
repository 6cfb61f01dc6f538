package models

import (
	"fmt"
	"unicode/utf8"
)

// SweetName is a value object representing a valid sweet name.
// Encapsulates validation rules: 1 to 255 characters.
type SweetName string

const (
	minSweetNameLength = 1
	maxSweetNameLength = 255
)

// NewSweetName constructs a valid SweetName or returns an error if constraints are violated.
func NewSweetName(s string) (SweetName, error) {
	if n := utf8.RuneCountInString(s); n < minSweetNameLength {
		return "", fmt.Errorf("sweet name must be at least %d character", minSweetNameLength)
	} else if n > maxSweetNameLength {
		return "", fmt.Errorf("sweet name must not exceed %d characters", maxSweetNameLength)
	}
	return SweetName(s), nil
}

// String returns the underlying string value.
func (n SweetName) String() string {
	return string(n)
}

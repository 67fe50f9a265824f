package utils

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

func OrZero[T comparable](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// StringOrNil trims s and returns nil when nothing is left, so optional text
// columns hold NULL instead of blanks.
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NilIfEmpty is StringOrNil for values that may already be nil.
func NilIfEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	return StringOrNil(*s)
}

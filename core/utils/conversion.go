package utils

import (
	"strconv"
	"strings"
)

// ParseNumber parses a numeric field value as exported by catalog systems.
// It accepts thousands separators, a leading currency symbol and surrounding
// whitespace ("$1,250.00", " 42 "). ok is false for empty or non-numeric input.
func ParseNumber(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£¥")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatNumber renders v without trailing zeros ("360", "12.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NormalizeText lowercases s, trims it and collapses inner whitespace runs.
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}

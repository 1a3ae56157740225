package model

import (
	"strconv"
	"strings"
)

// CoerceAmount converts a heterogeneous funding value to a float64. Funding
// maps carry numbers, numeric strings, and currency strings with K/M/B
// suffixes depending on which source produced them; every call site that
// needs arithmetic goes through this one function.
func CoerceAmount(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return coerceAmountString(n)
	default:
		return 0, false
	}
}

func coerceAmountString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "US$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	mult := 1.0
	switch s[len(s)-1] {
	case 'K', 'k':
		mult = 1e3
	case 'M', 'm':
		mult = 1e6
	case 'B', 'b':
		mult = 1e9
	}
	if mult != 1.0 {
		s = strings.TrimSpace(s[:len(s)-1])
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f * mult, true
}

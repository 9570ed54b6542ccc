// Package normalize turns the loosely-typed JSON objects coming out of the
// model into the domain structs, applying schema-directed defaults: monetary
// fields default to 0.0, identifiers to "UNKNOWN", lists to empty. The model
// sometimes emits the literal string "null" for missing values; that counts
// as missing too.
package normalize

import (
	"strconv"
	"strings"
)

const unknownIdent = "UNKNOWN"

// Amount coerces v to a monetary float64. Missing, null-ish, or unparseable
// values become 0.0. String amounts may carry currency symbols and grouping
// commas.
func Amount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		s := strings.TrimSpace(n)
		if isNullish(s) {
			return 0.0
		}
		s = strings.NewReplacer("$", "", ",", "", "€", "", "£", "").Replace(s)
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0.0
		}
		return f
	}
	return 0.0
}

// Quantity coerces v to an integer count, defaulting to 0.
func Quantity(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		s := strings.TrimSpace(n)
		if isNullish(s) {
			return 0
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// Ident coerces v to an identifier string, defaulting to "UNKNOWN".
func Ident(v any) string {
	s, ok := v.(string)
	if !ok {
		return unknownIdent
	}
	s = strings.TrimSpace(s)
	if isNullish(s) {
		return unknownIdent
	}
	return s
}

// Str coerces v to a plain string, defaulting to empty.
func Str(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if isNullish(s) {
		return ""
	}
	return s
}

// Fraction coerces v to a float in [0, 1], used for confidences and scores.
// Out-of-range values are clamped; missing values fall back to def.
func Fraction(v any, def float64) float64 {
	f, ok := asFloat(v)
	if !ok {
		return def
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Bool coerces v to a bool, defaulting to def. The model occasionally emits
// booleans as strings.
func Bool(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes":
			return true
		case "false", "no":
			return false
		}
	}
	return def
}

func asFloat(v any) (float64, bool) {
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
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func isNullish(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a":
		return true
	}
	return false
}

package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Float parses a numeric cell. ok is false for nil, blank, textual nulls, NaN
// and anything that is not a number.
func Float(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case []byte:
		return parseFloatText(string(n))
	case string:
		return parseFloatText(n)
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text returns the trimmed string form of a cell; nulls become "".
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return cleanText(s)
	case []byte:
		return cleanText(string(s))
	}

	id := NormalizeID(v)
	if IsUnknownID(id) {
		return ""
	}
	return id
}

// Truthy interprets flag-like cells: true/yes/y/1/1.0 are true, everything else false.
func Truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string, []byte:
		switch strings.ToLower(Text(b)) {
		case "true", "t", "yes", "y", "1", "1.0":
			return true
		}
		return false
	}

	f, ok := Float(v)
	return ok && f != 0
}

func parseFloatText(raw string) (float64, bool) {
	s := cleanText(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func cleanText(raw string) string {
	s := strings.TrimSpace(raw)
	if isNullText(s) {
		return ""
	}
	return s
}

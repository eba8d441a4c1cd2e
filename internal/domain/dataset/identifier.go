package dataset

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// UnknownID is the canonical key for a missing identifier. Joins filter it out
// explicitly instead of matching it against directory entries.
const UnknownID = "<unknown>"

var trailingZeroFraction = regexp.MustCompile(`^([+-]?\d+)\.0+$`)

// NormalizeID canonicalizes an entity identifier so that 123, 123.0, "123.0"
// and " 123 " all produce "123".
func NormalizeID(v any) string {
	switch id := v.(type) {
	case nil:
		return UnknownID
	case string:
		return normalizeIDString(id)
	case []byte:
		return normalizeIDString(string(id))
	case int:
		return strconv.FormatInt(int64(id), 10)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case uint32:
		return strconv.FormatUint(uint64(id), 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	case float32:
		return normalizeIDFloat(float64(id))
	case float64:
		return normalizeIDFloat(id)
	case fmt.Stringer:
		return normalizeIDString(id.String())
	default:
		return normalizeIDString(fmt.Sprint(id))
	}
}

// IsUnknownID reports whether id is the unknown sentinel.
func IsUnknownID(id string) bool {
	return id == UnknownID
}

func normalizeIDString(raw string) string {
	s := strings.TrimSpace(raw)
	if isNullText(s) {
		return UnknownID
	}
	if m := trailingZeroFraction.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return s
}

func normalizeIDFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return UnknownID
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isNullText(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "nil", "<na>":
		return true
	default:
		return false
	}
}

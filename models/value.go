package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NullToken replaces blank values inside composite keys.
const NullToken = "NULL"

// numericPrefix matches the leading decimal number of a string, the way a
// lenient float parser reads "1500만원" as 1500.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// IsBlank reports whether v is absent, nil or the empty string.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Normalize converts v into its composite-key token. Blank values become
// NullToken; everything else uses its string form, so the number 1000 and
// the string "1000" produce the same token.
func Normalize(v any) string {
	if IsBlank(v) {
		return NullToken
	}
	return Text(v)
}

// Text returns the display form of v. Blank values render as "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return FormatNumber(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// FormatNumber renders f in its shortest round-trippable decimal form.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// Negative zero prints as "0".
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Numeric parses v as a float64 and falls back to 0 when v is absent or
// has no leading number. It never fails.
func Numeric(v any) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return 0
		}
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		m := numericPrefix.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

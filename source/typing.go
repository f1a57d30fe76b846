package source

import (
	"regexp"
	"strconv"
	"strings"
)

// maxSafeInteger bounds the magnitude of values turned into numbers; larger
// ones (long complex codes, phone numbers) stay strings to keep every digit.
const maxSafeInteger = 1<<53 - 1

var numberRegexp = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// ParseValue types a raw CSV cell: "" becomes nil, true/false become bool,
// numeric text within the safe range becomes float64, everything else is
// kept as a string.
func ParseValue(raw string) any {
	switch raw {
	case "":
		return nil
	case "true", "TRUE":
		return true
	case "false", "FALSE":
		return false
	}

	if numberRegexp.MatchString(raw) {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && f > -maxSafeInteger && f < maxSafeInteger {
			return f
		}
	}
	return raw
}

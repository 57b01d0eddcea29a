package normalize

import (
	"strconv"
	"strings"
)

// Operation canonicalizes an order-number-like value so that the same
// operation can be matched across the two source systems regardless of
// formatting ("66.539", "66 539" and "66539" all normalize to 66539).
// It trims whitespace, strips thousands dots and inner spaces, and parses
// the remainder as a base-10 integer. The second return value is false
// when the cleaned string is empty or not numeric.
func Operation(value string) (int, bool) {
	s := strings.TrimSpace(value)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Number cleans a currency-like cell value formatted with Latin American
// separators: thousands dots are removed and the decimal comma becomes a
// dot before parsing. Returns false when the value is empty or not a
// number; callers must keep such fields empty rather than zero, because
// downstream logic distinguishes "no value" from an actual zero.
func Number(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NumberString is the string form of Number: a cleaned numeric value, or
// the empty string when the input is not numeric.
func NumberString(value string) string {
	n, ok := Number(value)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

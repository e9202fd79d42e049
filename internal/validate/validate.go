package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reQ = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ProductID parses a positive integer product id.
func ProductID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Qty parses a cart quantity edit. Non-numeric input is rejected (the edit
// is ignored upstream, not coerced); anything above 99 is clamped. Zero and
// negative values are valid — they mean "remove the line".
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if n > 99 {
		n = 99
	}
	return n, true
}

// Category accepts the "All" sentinel or a displayable category name.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 40 {
		return "", false
	}
	return s, true
}

// ChatText trims a chat submission and bounds its length.
func ChatText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 2000 {
		return "", false
	}
	return s, true
}

package problemgen

import (
	"strconv"
	"strings"
)

// ParseAnswer converts an input buffer into an integer answer.
// Malformed input yields -1, which never matches a generated answer.
func ParseAnswer(input string) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// CheckAnswer reports whether input is the correct answer to p.
func CheckAnswer(input string, p Problem) bool {
	return ParseAnswer(input) == p.Answer
}

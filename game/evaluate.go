package game

import (
	"strconv"
	"strings"

	"github.com/fizzbuzzhq/fizzbuzz-backend/models"
)

// ExpectedAnswer computes the authoritative answer for a number: the
// words of every rule whose divisor evenly divides it, concatenated in
// rule order. When no rule matches the answer is the number itself.
func ExpectedAnswer(number int, rules []models.GameRule) string {
	var b strings.Builder
	for _, r := range rules {
		if r.Divisor != 0 && number%r.Divisor == 0 {
			b.WriteString(r.Word)
		}
	}
	if b.Len() == 0 {
		return strconv.Itoa(number)
	}
	return b.String()
}

// AnswerMatches compares a submitted answer against the expected one,
// ignoring case and surrounding whitespace on both sides.
func AnswerMatches(submitted, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
}

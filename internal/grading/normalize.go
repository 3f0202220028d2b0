package grading

import "strings"

// stripped is the punctuation removed before answers are compared.
const stripped = ".,/#!$%^&*;:{}=-_`~()"

var punctuation = strings.NewReplacer(pairs(stripped)...)

func pairs(chars string) []string {
	out := make([]string, 0, 2*len(chars))
	for _, c := range chars {
		out = append(out, string(c), "")
	}
	return out
}

// Normalize lower-cases s, trims surrounding space and removes the
// stripped punctuation set, in that order.
func Normalize(s string) string {
	return punctuation.Replace(strings.TrimSpace(strings.ToLower(s)))
}

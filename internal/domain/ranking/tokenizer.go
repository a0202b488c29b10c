package ranking

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// minTokenLen drops single-character runs such as "a" or "c".
const minTokenLen = 2

// Tokenize lower-cases text and splits it into maximal runs of letters,
// digits and underscores. Runs shorter than two runes are discarded.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ToLower(norm.NFC.String(text))

	out := make([]string, 0, 16)
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenLen {
			out = append(out, text[start:end])
		}
		start = -1
		runes = 0
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))

	if len(out) == 0 {
		return nil
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxVariants caps the number of phrases a query expands to.
const MaxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lower-cases input, strips diacritics and punctuation and
// collapses whitespace.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, input); err == nil {
		input = folded
	}
	input = strings.ToLower(input)

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns normalized followed by synonym variants: synonyms of
// the full phrase, then of a leading one- or two-word prefix with the rest
// of the query appended.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, MaxVariants)
	seen := make(map[string]struct{}, MaxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(out) >= MaxVariants {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)
	tryPrefix := func(n int) {
		if len(words) <= n {
			return
		}
		prefix := strings.Join(words[:n], " ")
		rest := strings.Join(words[n:], " ")
		for _, syn := range GetSynonyms(prefix) {
			add(syn + " " + rest)
		}
	}
	tryPrefix(1)
	tryPrefix(2)

	return out
}

func ProcessQuery(input string) QueryContext {
	qc := QueryContext{Original: input, Normalized: NormalizeQuery(input)}
	qc.Variants = ExpandQuery(qc.Normalized)
	return qc
}

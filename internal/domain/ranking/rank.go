package ranking

import "sort"

type Scored[T any] struct {
	Item  T
	Score float64
}

// Rank pairs items with scores and orders them by descending score. Ties keep
// their input order. A missing score counts as 0.
func Rank[T any](items []T, scores []float64) []Scored[T] {
	out := make([]Scored[T], len(items))
	for i, it := range items {
		var s float64
		if i < len(scores) {
			s = scores[i]
		}
		out[i] = Scored[T]{Item: it, Score: s}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// RankTexts scores candidates against query and ranks them in one step.
func RankTexts[T any](query string, items []T, text func(T) string) []Scored[T] {
	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = text(it)
	}
	return Rank(items, Score(query, texts))
}

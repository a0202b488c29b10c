package ranking

import (
	"math"
	"sort"
)

// term is one non-zero weight of a TF-IDF row.
type term struct {
	idx    int
	weight float64
}

// vector is a sparse L2-normalised TF-IDF row sorted by vocabulary index.
type vector []term

// Score fits a TF-IDF model over the query and every candidate together and
// returns the cosine similarity of the query with each candidate, in input
// order. Scores are in [0, 1]; texts without any token score 0.
func Score(query string, candidates []string) []float64 {
	if len(candidates) == 0 {
		return []float64{}
	}

	docs := make([][]string, 0, len(candidates)+1)
	docs = append(docs, Tokenize(query))
	for _, c := range candidates {
		docs = append(docs, Tokenize(c))
	}

	rows := fit(docs)

	out := make([]float64, len(candidates))
	q := rows[0]
	if len(q) == 0 {
		return out
	}
	for i := range candidates {
		out[i] = cosine(q, rows[i+1])
	}
	return out
}

// Similarity is the single-pair form of Score.
func Similarity(a, b string) float64 {
	return Score(a, []string{b})[0]
}

// fit builds the vocabulary, smoothed idf weights and normalised rows for docs.
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func fit(docs [][]string) []vector {
	vocab := make(map[string]int)
	counts := make([]map[int]float64, len(docs))
	df := make([]int, 0, 64)

	for d, tokens := range docs {
		tf := make(map[int]float64, len(tokens))
		for _, tok := range tokens {
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
				df = append(df, 0)
			}
			if _, seen := tf[idx]; !seen {
				df[idx]++
			}
			tf[idx]++
		}
		counts[d] = tf
	}

	n := float64(len(docs))
	idf := make([]float64, len(df))
	for i, f := range df {
		idf[i] = math.Log((1+n)/(1+float64(f))) + 1
	}

	rows := make([]vector, len(docs))
	for d, tf := range counts {
		row := make(vector, 0, len(tf))
		for idx, c := range tf {
			row = append(row, term{idx: idx, weight: c * idf[idx]})
		}
		sort.Slice(row, func(i, j int) bool { return row[i].idx < row[j].idx })

		var sum float64
		for _, t := range row {
			sum += t.weight * t.weight
		}
		if sum > 0 {
			l2 := math.Sqrt(sum)
			for i := range row {
				row[i].weight /= l2
			}
		}
		rows[d] = row
	}
	return rows
}

// cosine is the dot product of two normalised rows.
func cosine(a, b vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].idx == b[j].idx:
			dot += a[i].weight * b[j].weight
			i++
			j++
		case a[i].idx < b[j].idx:
			i++
		default:
			j++
		}
	}
	return clamp(dot)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

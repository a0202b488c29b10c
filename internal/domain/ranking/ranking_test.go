package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "blank", in: "   \t", want: nil},
		{name: "lowercases and splits", in: "Go, PostgreSQL & Redis!", want: []string{"go", "postgresql", "redis"}},
		{name: "drops single runes", in: "a C b++ R", want: nil},
		{name: "keeps digits and underscore", in: "k8s snake_case 2024", want: []string{"k8s", "snake_case", "2024"}},
		{name: "unicode letters", in: "Müller Café", want: []string{"müller", "café"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestSimilarity_IdenticalTexts(t *testing.T) {
	s := Similarity("golang backend developer", "golang backend developer")
	assert.InDelta(t, 1.0, s, 1e-9)
}

func TestSimilarity_DisjointTexts(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("golang backend", "graphic design"))
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "python machine learning engineer"
	b := "machine learning researcher with python and pytorch"
	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-12)
}

func TestSimilarity_KnownValue(t *testing.T) {
	// two docs: "python" appears in both (idf 1), the other terms in one each.
	idf := math.Log(1.5) + 1
	want := 1 / (1 + idf*idf)
	assert.InDelta(t, want, Similarity("python ml", "python java"), 1e-12)
}

func TestScore_EmptyCandidates(t *testing.T) {
	got := Score("python", nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScore_EmptyQuery(t *testing.T) {
	got := Score("", []string{"python developer", "designer"})
	assert.Equal(t, []float64{0, 0}, got)
}

func TestScore_EmptyCandidateText(t *testing.T) {
	got := Score("python developer", []string{"", "python"})
	require.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0])
	assert.Greater(t, got[1], 0.0)
}

func TestScore_Bounds(t *testing.T) {
	got := Score("go go go rust", []string{"go", "rust rust", "go rust", "java"})
	for i, s := range got {
		assert.GreaterOrEqual(t, s, 0.0, "score %d", i)
		assert.LessOrEqual(t, s, 1.0, "score %d", i)
	}
}

func TestScore_PairAgreesWithBatchOfOne(t *testing.T) {
	q := "Go PostgreSQL Redis microservices"
	c := "Senior Go engineer building microservices on PostgreSQL"
	assert.Equal(t, Similarity(q, c), Score(q, []string{c})[0])
}

func TestSimilarity_IdfFitsThePairOnly(t *testing.T) {
	q := "go redis"
	// pair: go idf 1, redis and docker ln(3/2)+1.
	pairIDF := math.Log(1.5) + 1
	assert.InDelta(t, 1/(1+pairIDF*pairIDF), Similarity(q, "go docker"), 1e-12)

	// batch of two: three docs, so the rare terms weigh ln(2)+1.
	batchIDF := math.Log(2) + 1
	batch := Score(q, []string{"go docker", "go kafka"})
	assert.InDelta(t, 1/(1+batchIDF*batchIDF), batch[0], 1e-12)
	assert.Greater(t, Similarity(q, "go docker"), batch[0])
}

func TestRankTexts_PythonExample(t *testing.T) {
	jobs := []string{"Python developer role", "Graphic designer role"}
	scores := Score("Python machine learning", jobs)
	require.Len(t, scores, 2)
	assert.Greater(t, scores[0], scores[1])

	ranked := RankTexts("Python machine learning", jobs, func(s string) string { return s })
	assert.Equal(t, "Python developer role", ranked[0].Item)
}

func TestRank_OrderAndSet(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	ranked := Rank(items, []float64{0.2, 0.9, 0.2, 0.5})

	got := make([]string, 0, len(ranked))
	for i, r := range ranked {
		got = append(got, r.Item)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Score, r.Score)
		}
	}
	assert.ElementsMatch(t, items, got)
	// ties keep input order
	assert.Equal(t, []string{"b", "d", "a", "c"}, got)
}

func TestRank_MissingScoresCountAsZero(t *testing.T) {
	ranked := Rank([]string{"x", "y"}, []float64{0.1})
	require.Len(t, ranked, 2)
	assert.Equal(t, "x", ranked[0].Item)
	assert.Equal(t, 0.0, ranked[1].Score)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank([]int{}, nil))
}

func TestBuildProfileText(t *testing.T) {
	p := ProfileSource{
		Skills:      []string{"Go", " ", "Docker"},
		Experiences: []string{"Built payment APIs"},
		Projects:    []string{"", "Open source CLI"},
	}
	assert.Equal(t, "Go Docker Built payment APIs Open source CLI", BuildProfileText(p))
	assert.Equal(t, "", BuildProfileText(ProfileSource{}))
}

func TestBuildJobText(t *testing.T) {
	assert.Equal(t, "Backend Engineer Go services", BuildJobText(" Backend Engineer ", "Go services"))
	assert.Equal(t, "Title", BuildJobText("Title", ""))
}

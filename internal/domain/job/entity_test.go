package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplication_MatchPercent(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{0, 0},
		{1, 100},
		{0.123456, 12.35},
		{0.5, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Application{MatchScore: tt.score}.MatchPercent())
	}
}

func TestJob_Text(t *testing.T) {
	j := Job{Title: "Data Scientist", Description: "Python and statistics"}
	assert.Equal(t, "Data Scientist Python and statistics", j.Text())
}

package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProfile_Text(t *testing.T) {
	p := Profile{
		Skills: []string{"Go", "PostgreSQL"},
		Experiences: []WorkExperience{
			{Company: "Acme", Position: "Engineer", Description: strPtr("Built billing services")},
			{Company: "Initech", Position: "Intern"},
		},
		Projects: []Project{
			{Name: "cli", Description: strPtr("Terminal dashboard")},
			{Name: "no description"},
		},
	}

	assert.Equal(t, "Go PostgreSQL Built billing services Terminal dashboard", p.Text())
	assert.Equal(t, []string{"Go", "PostgreSQL"}, p.RankingSource().Skills)
}

func TestProfile_EmptySource(t *testing.T) {
	p := Profile{Experiences: []WorkExperience{{Company: "Acme"}}}
	assert.False(t, p.IsEmpty())
	assert.Equal(t, "", p.Text())
	assert.True(t, Profile{}.IsEmpty())
}

func TestProfile_EmbeddingDocument(t *testing.T) {
	p := Profile{
		User:   User{Name: "Ada", Bio: strPtr("Backend engineer")},
		Skills: []string{"Go"},
	}
	assert.Equal(t, "Ada. Backend engineer. Go", p.EmbeddingDocument())
}

func TestProfile_Normalize(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	p, err := Profile{
		User:      User{Name: "  Ada ", Bio: strPtr("  ")},
		Skills:    []string{" Go", "", "  "},
		Languages: []string{"English "},
		Experiences: []WorkExperience{{
			Company: "Acme", Position: "Engineer", StartDate: start, EndDate: &end, CurrentlyWorking: true,
		}},
	}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Nil(t, p.Bio)
	assert.Equal(t, []string{"Go"}, p.Skills)
	assert.Equal(t, []string{"English"}, p.Languages)
	assert.Nil(t, p.Experiences[0].EndDate)
}

func TestProfile_NormalizeRejects(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(-1, 0, 0)

	cases := map[string]Profile{
		"blank name":       {User: User{Name: " "}},
		"no start date":    {User: User{Name: "Ada"}, Experiences: []WorkExperience{{Company: "Acme", Position: "Dev"}}},
		"end before start": {User: User{Name: "Ada"}, Experiences: []WorkExperience{{Company: "Acme", Position: "Dev", StartDate: start, EndDate: &before}}},
		"unnamed project":  {User: User{Name: "Ada"}, Projects: []Project{{Description: strPtr("x")}}},
		"cert provider":    {User: User{Name: "Ada"}, Certifications: []Certification{{Name: "CKA"}}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.Normalize()
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

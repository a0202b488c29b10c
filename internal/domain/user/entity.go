package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hirelink/internal/domain/ranking"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidProfile = errors.New("invalid profile")
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Location     *string
	Bio          *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type WorkExperience struct {
	ID               uuid.UUID
	Company          string
	Position         string
	Location         *string
	StartDate        time.Time
	EndDate          *time.Time
	CurrentlyWorking bool
	Description      *string
}

type Project struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Link        *string
}

type Certification struct {
	ID       uuid.UUID
	Name     string
	Provider string
	Link     *string
}

// Profile is a user together with every profile section.
type Profile struct {
	User

	Skills         []string
	Languages      []string
	Experiences    []WorkExperience
	Projects       []Project
	Certifications []Certification
}

// RankingSource extracts the fields the similarity ranker reads.
func (p Profile) RankingSource() ranking.ProfileSource {
	src := ranking.ProfileSource{
		Skills:      append([]string(nil), p.Skills...),
		Experiences: make([]string, 0, len(p.Experiences)),
		Projects:    make([]string, 0, len(p.Projects)),
	}
	for _, e := range p.Experiences {
		if e.Description != nil {
			src.Experiences = append(src.Experiences, *e.Description)
		}
	}
	for _, pr := range p.Projects {
		if pr.Description != nil {
			src.Projects = append(src.Projects, *pr.Description)
		}
	}
	return src
}

// IsEmpty reports whether the profile has no skills, experiences or projects.
func (p Profile) IsEmpty() bool {
	return len(p.Skills) == 0 && len(p.Experiences) == 0 && len(p.Projects) == 0
}

// Text is the profile text used for similarity scoring.
func (p Profile) Text() string {
	return ranking.BuildProfileText(p.RankingSource())
}

// EmbeddingDocument is the text indexed for semantic candidate search.
func (p Profile) EmbeddingDocument() string {
	parts := []string{p.Name}
	if p.Bio != nil {
		parts = append(parts, *p.Bio)
	}
	parts = append(parts, p.Text())

	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ". ")
}

// Normalize trims every free-text field, drops blank skills and languages and
// rejects sections that miss a required field.
func (p Profile) Normalize() (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, ErrInvalidProfile
	}
	p.Location = trimOptional(p.Location)
	p.Bio = trimOptional(p.Bio)
	p.Skills = trimNames(p.Skills)
	p.Languages = trimNames(p.Languages)

	for i := range p.Experiences {
		e := &p.Experiences[i]
		e.Company = strings.TrimSpace(e.Company)
		e.Position = strings.TrimSpace(e.Position)
		if e.Company == "" || e.Position == "" || e.StartDate.IsZero() {
			return Profile{}, ErrInvalidProfile
		}
		if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
			return Profile{}, ErrInvalidProfile
		}
		if e.CurrentlyWorking {
			e.EndDate = nil
		}
		e.Location = trimOptional(e.Location)
		e.Description = trimOptional(e.Description)
	}
	for i := range p.Projects {
		pr := &p.Projects[i]
		pr.Name = strings.TrimSpace(pr.Name)
		if pr.Name == "" {
			return Profile{}, ErrInvalidProfile
		}
		pr.Description = trimOptional(pr.Description)
		pr.Link = trimOptional(pr.Link)
	}
	for i := range p.Certifications {
		c := &p.Certifications[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Provider = strings.TrimSpace(c.Provider)
		if c.Name == "" || c.Provider == "" {
			return Profile{}, ErrInvalidProfile
		}
		c.Link = trimOptional(c.Link)
	}
	return p, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

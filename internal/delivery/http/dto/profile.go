package dto

import (
	"time"

	"github.com/google/uuid"

	"hirelink/internal/domain/user"
)

type WorkExperience struct {
	Company          string     `json:"company"`
	Position         string     `json:"position"`
	Location         *string    `json:"location"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	CurrentlyWorking bool       `json:"currently_working"`
	Description      *string    `json:"description"`
}

type Project struct {
	Name        string  `json:"project_name"`
	Description *string `json:"project_description"`
	Link        *string `json:"project_link"`
}

type Certification struct {
	Name     string  `json:"certification_name"`
	Provider string  `json:"certification_provider"`
	Link     *string `json:"certificate_link"`
}

// ProfileFields are the profile sections shared by registration, update and
// every profile response.
type ProfileFields struct {
	Name           string           `json:"name"`
	Location       *string          `json:"location"`
	Bio            *string          `json:"bio"`
	Skills         []string         `json:"skills"`
	Languages      []string         `json:"languages"`
	Experiences    []WorkExperience `json:"experiences"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ProfileFields
}

type UpdateProfileRequest struct {
	Email string `json:"email"`
	ProfileFields
}

type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ProfileFields
}

func (f ProfileFields) ToProfile() user.Profile {
	p := user.Profile{
		User:           user.User{Name: f.Name, Location: f.Location, Bio: f.Bio},
		Skills:         f.Skills,
		Languages:      f.Languages,
		Experiences:    make([]user.WorkExperience, 0, len(f.Experiences)),
		Projects:       make([]user.Project, 0, len(f.Projects)),
		Certifications: make([]user.Certification, 0, len(f.Certifications)),
	}
	for _, e := range f.Experiences {
		p.Experiences = append(p.Experiences, user.WorkExperience{
			Company:          e.Company,
			Position:         e.Position,
			Location:         e.Location,
			StartDate:        e.StartDate,
			EndDate:          e.EndDate,
			CurrentlyWorking: e.CurrentlyWorking,
			Description:      e.Description,
		})
	}
	for _, pr := range f.Projects {
		p.Projects = append(p.Projects, user.Project{Name: pr.Name, Description: pr.Description, Link: pr.Link})
	}
	for _, c := range f.Certifications {
		p.Certifications = append(p.Certifications, user.Certification{Name: c.Name, Provider: c.Provider, Link: c.Link})
	}
	return p
}

func NewProfileResponse(p user.Profile) ProfileResponse {
	out := ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		ProfileFields: ProfileFields{
			Name:           p.Name,
			Location:       p.Location,
			Bio:            p.Bio,
			Skills:         nonNil(p.Skills),
			Languages:      nonNil(p.Languages),
			Experiences:    make([]WorkExperience, 0, len(p.Experiences)),
			Projects:       make([]Project, 0, len(p.Projects)),
			Certifications: make([]Certification, 0, len(p.Certifications)),
		},
	}
	for _, e := range p.Experiences {
		out.Experiences = append(out.Experiences, WorkExperience{
			Company:          e.Company,
			Position:         e.Position,
			Location:         e.Location,
			StartDate:        e.StartDate,
			EndDate:          e.EndDate,
			CurrentlyWorking: e.CurrentlyWorking,
			Description:      e.Description,
		})
	}
	for _, pr := range p.Projects {
		out.Projects = append(out.Projects, Project{Name: pr.Name, Description: pr.Description, Link: pr.Link})
	}
	for _, c := range p.Certifications {
		out.Certifications = append(out.Certifications, Certification{Name: c.Name, Provider: c.Provider, Link: c.Link})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

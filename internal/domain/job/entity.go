package job

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"hirelink/internal/domain/ranking"
)

var (
	ErrNotFound       = errors.New("job not found")
	ErrAlreadyApplied = errors.New("already applied for this job")
)

type Job struct {
	ID          uuid.UUID
	HRID        uuid.UUID
	Title       string
	CompanyName string
	WorkType    string
	Location    string
	JobType     string
	Description string
	CreatedAt   time.Time
}

// Text is the job text used for similarity scoring.
func (j Job) Text() string {
	return ranking.BuildJobText(j.Title, j.Description)
}

// Application records a user applying to a job. MatchScore is fixed at
// creation time and never recomputed.
type Application struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	JobID      uuid.UUID
	AppliedAt  time.Time
	MatchScore float64
}

// MatchPercent is the score as a percentage rounded to two decimals.
func (a Application) MatchPercent() float64 {
	return math.Round(a.MatchScore*100*100) / 100
}

// UserApplication is an application joined with its job summary.
type UserApplication struct {
	Application
	Title       string
	CompanyName string
	Location    string
}

// Applicant is an application joined with the applying user.
type Applicant struct {
	UserID     uuid.UUID
	Name       string
	Email      string
	AppliedAt  time.Time
	MatchScore float64
}

type ListFilter struct {
	Terms  []string
	Limit  int
	Offset int
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"hirelink/internal/domain/job"
)

type PostJobRequest struct {
	Title       string `json:"title"`
	WorkType    string `json:"work_type"`
	Location    string `json:"location"`
	JobType     string `json:"job_type"`
	Description string `json:"description"`
}

type JobResponse struct {
	JobID       uuid.UUID `json:"job_id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	WorkType    string    `json:"work_type"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type"`
	Description string    `json:"description"`
	PostedAt    time.Time `json:"posted_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		JobID:       j.ID,
		Title:       j.Title,
		CompanyName: j.CompanyName,
		WorkType:    j.WorkType,
		Location:    j.Location,
		JobType:     j.JobType,
		Description: j.Description,
		PostedAt:    j.CreatedAt,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type ApplyResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	JobID         uuid.UUID `json:"job_id"`
	AppliedAt     time.Time `json:"applied_at"`
	MatchingScore float64   `json:"matching_score"`
}

func NewApplyResponse(a job.Application) ApplyResponse {
	return ApplyResponse{ApplicationID: a.ID, JobID: a.JobID, AppliedAt: a.AppliedAt, MatchingScore: a.MatchPercent()}
}

type UserApplicationResponse struct {
	JobID         uuid.UUID `json:"job_id"`
	Title         string    `json:"title"`
	CompanyName   string    `json:"company_name"`
	Location      string    `json:"location"`
	AppliedAt     time.Time `json:"applied_at"`
	MatchingScore float64   `json:"matching_score"`
}

func NewUserApplicationResponses(items []job.UserApplication) []UserApplicationResponse {
	out := make([]UserApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, UserApplicationResponse{
			JobID:         a.JobID,
			Title:         a.Title,
			CompanyName:   a.CompanyName,
			Location:      a.Location,
			AppliedAt:     a.AppliedAt,
			MatchingScore: a.MatchPercent(),
		})
	}
	return out
}

type ApplicantResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	AppliedAt  time.Time `json:"applied_at"`
	MatchScore float64   `json:"match_score"`
}

type ApplicantsResponse struct {
	Job        JobResponse         `json:"job"`
	Applicants []ApplicantResponse `json:"applicants"`
}

func NewApplicantsResponse(j job.Job, items []job.Applicant) ApplicantsResponse {
	out := ApplicantsResponse{Job: NewJobResponse(j), Applicants: make([]ApplicantResponse, 0, len(items))}
	for _, a := range items {
		out.Applicants = append(out.Applicants, ApplicantResponse{
			UserID:     a.UserID,
			Name:       a.Name,
			Email:      a.Email,
			AppliedAt:  a.AppliedAt,
			MatchScore: job.Application{MatchScore: a.MatchScore}.MatchPercent(),
		})
	}
	return out
}

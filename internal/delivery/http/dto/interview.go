package dto

import "hirelink/internal/domain/interview"

type StartInterviewRequest struct {
	Role          string   `json:"role"`
	Level         string   `json:"level"`
	QuestionCount int      `json:"question_count"`
	FocusAreas    []string `json:"focus_areas"`
}

func (r StartInterviewRequest) Settings() interview.Settings {
	return interview.Settings{
		Role:          r.Role,
		Level:         interview.Level(r.Level),
		QuestionCount: r.QuestionCount,
		FocusAreas:    r.FocusAreas,
	}
}

type AnswerRequest struct {
	QuestionIndex *int   `json:"question_index"`
	Answer        string `json:"answer"`
}

package interview

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("interview session not found")
	ErrInvalidSettings  = errors.New("invalid interview settings")
	ErrQuestionNotFound = errors.New("question index out of range")
	ErrSessionFinished  = errors.New("interview session already finished")
)

type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

func ParseLevel(s string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelJunior:
		return LevelJunior, true
	case LevelMid, "":
		return LevelMid, true
	case LevelSenior:
		return LevelSenior, true
	default:
		return "", false
	}
}

// Settings configures one mock interview.
type Settings struct {
	Role          string   `json:"role"`
	Level         Level    `json:"level"`
	QuestionCount int      `json:"question_count"`
	FocusAreas    []string `json:"focus_areas,omitempty"`
}

// Normalize trims fields and applies the default question count. It fails
// when the role is blank or the count is outside [1, max].
func (s Settings) Normalize(defaultCount, maxCount int) (Settings, error) {
	s.Role = strings.TrimSpace(s.Role)
	if s.Role == "" {
		return Settings{}, ErrInvalidSettings
	}

	lvl, ok := ParseLevel(string(s.Level))
	if !ok {
		return Settings{}, ErrInvalidSettings
	}
	s.Level = lvl

	if s.QuestionCount == 0 {
		s.QuestionCount = defaultCount
	}
	if s.QuestionCount < 1 || s.QuestionCount > maxCount {
		return Settings{}, ErrInvalidSettings
	}

	areas := make([]string, 0, len(s.FocusAreas))
	for _, a := range s.FocusAreas {
		if a = strings.TrimSpace(a); a != "" {
			areas = append(areas, a)
		}
	}
	s.FocusAreas = areas
	return s, nil
}

type QuestionSource string

const (
	SourceModel    QuestionSource = "model"
	SourceFallback QuestionSource = "question_bank"
)

type EvaluationStatus string

const (
	StatusScored   EvaluationStatus = "scored"
	StatusUnscored EvaluationStatus = "unscored"
)

type Evaluation struct {
	Status   EvaluationStatus `json:"status"`
	Score    float64          `json:"score"`
	Feedback string           `json:"feedback,omitempty"`
}

type Answer struct {
	QuestionIndex int        `json:"question_index"`
	Text          string     `json:"text"`
	FromAudio     bool       `json:"from_audio"`
	Evaluation    Evaluation `json:"evaluation"`
	AnsweredAt    time.Time  `json:"answered_at"`
}

type Session struct {
	ID             string         `json:"id"`
	UserID         uuid.UUID      `json:"user_id"`
	Settings       Settings       `json:"settings"`
	Questions      []string       `json:"questions"`
	QuestionSource QuestionSource `json:"question_source"`
	Answers        []Answer       `json:"answers"`
	CreatedAt      time.Time      `json:"created_at"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`
}

func (s *Session) Finished() bool {
	return s.FinishedAt != nil
}

// Record stores a, replacing any earlier answer to the same question.
func (s *Session) Record(a Answer) error {
	if s.Finished() {
		return ErrSessionFinished
	}
	if a.QuestionIndex < 0 || a.QuestionIndex >= len(s.Questions) {
		return ErrQuestionNotFound
	}
	for i := range s.Answers {
		if s.Answers[i].QuestionIndex == a.QuestionIndex {
			s.Answers[i] = a
			return nil
		}
	}
	s.Answers = append(s.Answers, a)
	return nil
}

type QuestionResult struct {
	Question string  `json:"question"`
	Answer   *Answer `json:"answer,omitempty"`
}

type Summary struct {
	SessionID    string           `json:"session_id"`
	Answered     int              `json:"answered"`
	Scored       int              `json:"scored"`
	AverageScore *float64         `json:"average_score"`
	Results      []QuestionResult `json:"results"`
	CompletedAt  time.Time        `json:"completed_at"`
}

// Summarize averages the scored answers. AverageScore is nil when nothing
// was scored.
func (s *Session) Summarize(now time.Time) Summary {
	out := Summary{
		SessionID:   s.ID,
		Results:     make([]QuestionResult, len(s.Questions)),
		CompletedAt: now,
	}

	var total float64
	for i, q := range s.Questions {
		out.Results[i] = QuestionResult{Question: q}
	}
	for i := range s.Answers {
		a := s.Answers[i]
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(out.Results) {
			continue
		}
		out.Results[a.QuestionIndex].Answer = &a
		out.Answered++
		if a.Evaluation.Status == StatusScored {
			out.Scored++
			total += a.Evaluation.Score
		}
	}
	if out.Scored > 0 {
		avg := total / float64(out.Scored)
		out.AverageScore = &avg
	}
	return out
}

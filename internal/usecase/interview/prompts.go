package interview

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"hirelink/internal/domain/interview"
)

const questionSystemPrompt = `You are an experienced technical interviewer running a mock interview.
Write clear, self-contained interview questions that a candidate can answer verbally in two to three minutes.
Respond with a JSON array of strings only, for example ["question one", "question two"].`

const scoringSystemPrompt = `You are an experienced technical interviewer grading a candidate's answer in a mock interview.
Score the answer from 0 to 10 for correctness, depth and clarity, and give two or three sentences of constructive feedback.
Respond with a JSON object only: {"score": <number 0-10>, "feedback": "<text>"}.`

func questionPrompt(s interview.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s\n", s.Role)
	fmt.Fprintf(&b, "Seniority: %s\n", s.Level)
	if len(s.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Focus areas: %s\n", strings.Join(s.FocusAreas, ", "))
	}
	fmt.Fprintf(&b, "Write exactly %d questions.", s.QuestionCount)
	return b.String()
}

func scoringPrompt(s interview.Settings, question, answer string) string {
	return fmt.Sprintf("Role: %s (%s)\nQuestion: %s\nCandidate answer: %s", s.Role, s.Level, question, answer)
}

// stripFence removes a markdown code fence the model may wrap JSON in.
func stripFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// parseQuestions accepts a JSON array of strings, or an object with a
// "questions" array, and returns exactly want non-blank questions.
func parseQuestions(content string, want int) ([]string, bool) {
	content = stripFence(content)

	var list []string
	if err := json.Unmarshal([]byte(content), &list); err != nil {
		var wrapped struct {
			Questions []string `json:"questions"`
		}
		start, end := strings.Index(content, "{"), strings.LastIndex(content, "}")
		if start < 0 || end <= start {
			return nil, false
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &wrapped); err != nil {
			return nil, false
		}
		list = wrapped.Questions
	}

	out := make([]string, 0, want)
	for _, q := range list {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
		if len(out) == want {
			break
		}
	}
	if len(out) < want {
		return nil, false
	}
	return out, true
}

type scoreReply struct {
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

// parseEvaluation reads {"score", "feedback"}. Scores outside 0-10 are
// clamped; a missing score is unusable.
func parseEvaluation(content string) (interview.Evaluation, bool) {
	content = stripFence(content)
	start, end := strings.Index(content, "{"), strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return interview.Evaluation{}, false
	}

	var r scoreReply
	if err := json.Unmarshal([]byte(content[start:end+1]), &r); err != nil || r.Score == nil {
		return interview.Evaluation{}, false
	}
	score := *r.Score
	if math.IsNaN(score) {
		return interview.Evaluation{}, false
	}
	score = math.Max(0, math.Min(10, score))

	return interview.Evaluation{
		Status:   interview.StatusScored,
		Score:    math.Round(score*10) / 10,
		Feedback: strings.TrimSpace(r.Feedback),
	}, true
}

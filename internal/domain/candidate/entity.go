package candidate

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNoMatches = errors.New("no matching candidates")

// Document is the indexed representation of one candidate.
type Document struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	Vector    []float32
	Model     string
	UpdatedAt time.Time
}

type Match struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Score  float64   `json:"score"`
}

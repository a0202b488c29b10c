package hr

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("hr account not found")
	ErrEmailTaken = errors.New("email already registered")
)

type HR struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Company      string
	CreatedAt    time.Time
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"hirelink/internal/domain/hr"
	"hirelink/internal/domain/user"
	ucauth "hirelink/internal/usecase/auth"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterHRRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func NewTokenResponse(t ucauth.Tokens) TokenResponse {
	return TokenResponse{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken, TokenType: t.TokenType}
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func NewUserSummary(u user.User) UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, Name: u.Name}
}

type HRResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHRResponse(h hr.HR) HRResponse {
	return HRResponse{ID: h.ID, Name: h.Name, Email: h.Email, Company: h.Company, CreatedAt: h.CreatedAt}
}

type LoginResponse struct {
	Account any `json:"account"`
	TokenResponse
}

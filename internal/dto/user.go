package dto

import (
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// RegisterRequest defines the expected JSON body for account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the expected JSON body for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token and the logged-in user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ExchangeCodeRequest defines the JSON body for the Google OAuth code exchange.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse defines the public data returned for a user.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IDVerified bool      `json:"idVerified"`
	TrustScore int       `json:"trustScore"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		IDVerified: u.IDVerified,
		TrustScore: u.TrustScore,
		CreatedAt:  u.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/issue-tracker/models"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterRequest represents registration data.
// At least one of FirstName and LastName must be given.
type RegisterRequest struct {
	Email     string  `form:"email" json:"email" binding:"required,email"`
	Password  string  `form:"password" json:"password" binding:"required,min=6"`
	Username  *string `form:"username" json:"username"`
	FirstName string  `form:"first_name" json:"first_name"`
	LastName  string  `form:"last_name" json:"last_name"`
}

// AuthResponse represents the response after authentication
type AuthResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

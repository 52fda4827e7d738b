package dto

import "github.com/campushub/campushub/internal/app/models"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"alice"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret-pass"`
	Role     string `json:"role" binding:"required,oneof=student faculty admin" example:"student"`
	FullName string `json:"fullName" binding:"required" example:"Alice Johnson"`
	Email    string `json:"email" binding:"required,email" example:"alice@campus.edu"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// LoginResponse carries the session token issued on a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"43200"` // seconds
	User      *models.User `json:"user"`
}

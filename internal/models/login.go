package models

import "github.com/google/uuid"

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// LoginUser is the identity summary returned on login
// swagger:model LoginUser
type LoginUser struct {
	Email   string    `json:"email"`
	UserUID uuid.UUID `json:"user_uid"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// example: Login successful
	Message      string    `json:"message"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         LoginUser `json:"user"`
}

// RefreshTokenResponse carries a newly issued access token
// swagger:model RefreshTokenResponse
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

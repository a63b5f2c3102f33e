package models

// SignupRequest represents the JSON body for user registration
// swagger:model SignupRequest
type SignupRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// First name
	// example: John
	FirstName string `json:"first_name"`

	// Last name
	// example: Doe
	LastName string `json:"last_name"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

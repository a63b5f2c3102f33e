package models

// ErrorResponse is the body of every error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Fixed label of the error kind
	// example: Book not found
	Error string `json:"error"`

	// Error detail
	// example: book not found
	Detail string `json:"detail,omitempty"`
}

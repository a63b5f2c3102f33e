package handlers

//go:generate mockgen -source=signup.go -destination=signup_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/models"
)

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	CreateUser(ctx context.Context, req models.SignupRequest) (*models.User, error)
}

// NewSignupHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Create a user account. The email must not be registered yet.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body models.SignupRequest true "Signup Request"
// @Success 201 {object} models.User "User created"
// @Failure 409 {object} models.ErrorResponse "User already exists"
// @Failure 422 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignupRequest
		if err := decodeRequest(r, &req); err != nil {
			apperrors.Write(w, err)
			return
		}

		user, err := svc.CreateUser(r.Context(), req)
		if err != nil {
			apperrors.Write(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

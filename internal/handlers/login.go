package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (access, refresh string, user *models.User, err error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return an access and a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "Tokens issued"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 422 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeRequest(r, &req); err != nil {
			apperrors.Write(w, err)
			return
		}

		access, refresh, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			apperrors.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.LoginResponse{
			Message:      "Login successful",
			AccessToken:  access,
			RefreshToken: refresh,
			User: models.LoginUser{
				Email:   user.Email,
				UserUID: user.UID,
			},
		})
	}
}

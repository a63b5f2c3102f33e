package handlers

//go:generate mockgen -source=refresh.go -destination=refresh_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/jwt"
	"github.com/sbilibin2017/bookly/internal/models"
)

// AccessTokenRefresher issues access tokens from refresh-token claims.
type AccessTokenRefresher interface {
	RefreshAccessToken(ctx context.Context, claims *jwt.Claims) (string, error)
}

// NewRefreshTokenHandler returns an HTTP handler that exchanges a refresh token
// for a new access token. It must be mounted behind the refresh-token guard.
// @Summary Refresh access token
// @Description Issue a new access token for the user of a valid refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} models.RefreshTokenResponse "New access token"
// @Failure 401 {object} models.ErrorResponse "Invalid, expired or non-refresh token"
// @Router /refresh_token [get]
// @Security BearerAuth
func NewRefreshTokenHandler(svc AccessTokenRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.ClaimsFromContext(r.Context())
		if claims == nil {
			apperrors.Write(w, apperrors.ErrRefreshTokenRequired)
			return
		}

		token, err := svc.RefreshAccessToken(r.Context(), claims)
		if err != nil {
			apperrors.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.RefreshTokenResponse{AccessToken: token})
	}
}

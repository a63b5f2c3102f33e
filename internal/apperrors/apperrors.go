// Package apperrors defines the domain error kinds of the API and maps them
// to HTTP responses.
package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/bookly/internal/logger"
	"github.com/sbilibin2017/bookly/internal/models"
)

// Domain error kinds. Wrap them with fmt.Errorf("...: %w", err) to add detail.
var (
	ErrInvalidToken           = errors.New("token is invalid or has expired")
	ErrRevokedToken           = errors.New("token has been revoked")
	ErrAccessTokenRequired    = errors.New("please provide a valid access token")
	ErrRefreshTokenRequired   = errors.New("please provide a valid refresh token")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInsufficientPermission = errors.New("you do not have enough permissions to perform this action")
	ErrUserAlreadyExists      = errors.New("user with email already exists")
	ErrTagAlreadyExists       = errors.New("tag already exists")
	ErrBookNotFound           = errors.New("book not found")
	ErrTagNotFound            = errors.New("tag not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidRequest         = errors.New("invalid request body")
)

// internalLabel is returned for every error outside the table.
const internalLabel = "Internal server error"

type kind struct {
	err    error
	status int
	label  string
}

var kinds = []kind{
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{ErrRevokedToken, http.StatusUnauthorized, "Token has been revoked"},
	{ErrAccessTokenRequired, http.StatusUnauthorized, "Access token required"},
	{ErrRefreshTokenRequired, http.StatusUnauthorized, "Refresh token required"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{ErrInsufficientPermission, http.StatusForbidden, "Insufficient permissions"},
	{ErrUserAlreadyExists, http.StatusConflict, "User already exists"},
	{ErrTagAlreadyExists, http.StatusConflict, "Tag already exists"},
	{ErrBookNotFound, http.StatusNotFound, "Book not found"},
	{ErrTagNotFound, http.StatusNotFound, "Tag not found"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ErrInvalidRequest, http.StatusUnprocessableEntity, "Invalid request body"},
}

// Lookup returns the HTTP status and label for err.
// ok is false when err does not wrap any known kind.
func Lookup(err error) (status int, label string, ok bool) {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status, k.label, true
		}
	}
	return http.StatusInternalServerError, internalLabel, false
}

// Write renders err as a JSON error body with the mapped status code.
// Unknown errors are logged and rendered as 500 without detail.
func Write(w http.ResponseWriter, err error) {
	status, label, ok := Lookup(err)

	resp := models.ErrorResponse{Error: label}
	if ok {
		resp.Detail = err.Error()
	} else {
		logger.Log.Errorw("internal server error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

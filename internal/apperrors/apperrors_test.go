package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sbilibin2017/bookly/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		err    error
		status int
		label  string
	}{
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

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			status, label, ok := Lookup(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestLookup_Wrapped(t *testing.T) {
	err := fmt.Errorf("book %s: %w", "123", ErrBookNotFound)

	status, label, ok := Lookup(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Book not found", label)
}

func TestLookup_Unknown(t *testing.T) {
	status, label, ok := Lookup(errors.New("connection refused"))
	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", label)
}

func TestWrite(t *testing.T) {
	t.Run("known kind", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Write(rr, fmt.Errorf("signup: %w", ErrUserAlreadyExists))

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "User already exists", resp.Error)
		assert.Equal(t, "signup: user with email already exists", resp.Detail)
	})

	t.Run("unknown error hides detail", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Write(rr, errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Internal server error", resp["error"])
		_, hasDetail := resp["detail"]
		assert.False(t, hasDetail)
	})
}

package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/jwt"
	"github.com/sbilibin2017/bookly/internal/models"
	"github.com/sbilibin2017/bookly/internal/password"
	"github.com/sbilibin2017/bookly/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_CreateUser(t *testing.T) {
	req := models.SignupRequest{
		Email:     " Alice@Example.com ",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "pass123",
	}

	tests := []struct {
		name      string
		writerErr error
		wantErr   error
	}{
		{
			name: "successful signup",
		},
		{
			name:      "email taken",
			writerErr: fmt.Errorf("%w: alice@example.com", apperrors.ErrUserAlreadyExists),
			wantErr:   apperrors.ErrUserAlreadyExists,
		},
		{
			name:      "writer error",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockTokens := services.NewMockTokenEncoder(ctrl)
			svc := services.NewAuthService(mockReader, mockWriter, mockTokens)

			var stored *models.User
			mockWriter.EXPECT().
				Save(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, u *models.User) (*models.User, error) {
					stored = u
					if tt.writerErr != nil {
						return nil, tt.writerErr
					}
					return u, nil
				})

			user, err := svc.CreateUser(context.Background(), req)

			require.NotNil(t, stored)
			assert.Equal(t, "alice@example.com", stored.Email)
			assert.Equal(t, models.DefaultRole, stored.Role)
			assert.False(t, stored.IsVerified)
			assert.NotEqual(t, uuid.Nil, stored.UID)
			assert.NotEqual(t, req.Password, stored.PasswordHash)
			assert.True(t, password.Verify(req.Password, stored.PasswordHash))

			if tt.wantErr != nil {
				assert.Nil(t, user)
				if errors.Is(tt.wantErr, apperrors.ErrUserAlreadyExists) {
					assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", user.Username)
		})
	}
}

func TestAuthService_UserExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), services.NewMockTokenEncoder(ctrl))
	ctx := context.Background()

	mockReader.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(&models.User{UID: uuid.New()}, nil)
	exists, err := svc.UserExists(ctx, "A@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	mockReader.EXPECT().GetByEmail(gomock.Any(), "b@x.com").Return(nil, nil)
	exists, err = svc.UserExists(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	mockReader.EXPECT().GetByEmail(gomock.Any(), "c@x.com").Return(nil, errors.New("db error"))
	_, err = svc.UserExists(ctx, "c@x.com")
	assert.EqualError(t, err, "db error")
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.Hash("pass123")
	require.NoError(t, err)

	existing := &models.User{UID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}
	identity := jwt.UserIdentity{Email: existing.Email, UserUID: existing.UID}

	tests := []struct {
		name        string
		email       string
		password    string
		user        *models.User
		readerErr   error
		accessErr   error
		wantAccess  string
		wantRefresh string
		wantErr     error
	}{
		{
			name:        "successful login",
			email:       "alice@example.com",
			password:    "pass123",
			user:        existing,
			wantAccess:  "access",
			wantRefresh: "refresh",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "pass123",
			wantErr:  apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrong",
			user:     existing,
			wantErr:  apperrors.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			email:     "alice@example.com",
			password:  "pass123",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "token error",
			email:     "alice@example.com",
			password:  "pass123",
			user:      existing,
			accessErr: errors.New("sign error"),
			wantErr:   errors.New("sign error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockReader := services.NewMockUserReader(ctrl)
			mockTokens := services.NewMockTokenEncoder(ctrl)
			svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), mockTokens)

			mockReader.EXPECT().GetByEmail(gomock.Any(), tt.email).Return(tt.user, tt.readerErr)

			if tt.user != nil && tt.password == "pass123" {
				mockTokens.EXPECT().
					Encode(gomock.Any(), identity, time.Duration(0), false).
					Return(tt.wantAccess, tt.accessErr)
				if tt.accessErr == nil {
					mockTokens.EXPECT().
						Encode(gomock.Any(), identity, time.Duration(0), true).
						Return(tt.wantRefresh, nil)
				}
			}

			access, refresh, user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.Empty(t, access)
				assert.Empty(t, refresh)
				assert.Nil(t, user)
				if errors.Is(tt.wantErr, apperrors.ErrInvalidCredentials) {
					assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, access)
			assert.Equal(t, tt.wantRefresh, refresh)
			assert.Equal(t, existing, user)
		})
	}
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokens := services.NewMockTokenEncoder(ctrl)
	svc := services.NewAuthService(services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl), mockTokens)
	identity := jwt.UserIdentity{Email: "a@x.com", UserUID: uuid.New()}

	mockTokens.EXPECT().Encode(gomock.Any(), identity, time.Duration(0), false).Return("new-access", nil)
	token, err := svc.RefreshAccessToken(context.Background(), &jwt.Claims{User: identity, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, "new-access", token)

	_, err = svc.RefreshAccessToken(context.Background(), &jwt.Claims{User: identity, Refresh: false})
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenRequired)

	_, err = svc.RefreshAccessToken(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenRequired)

	mockTokens.EXPECT().Encode(gomock.Any(), identity, time.Duration(0), false).Return("", errors.New("sign error"))
	_, err = svc.RefreshAccessToken(context.Background(), &jwt.Claims{User: identity, Refresh: true})
	assert.ErrorContains(t, err, "sign error")
}

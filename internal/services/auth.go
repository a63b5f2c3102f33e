package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/jwt"
	"github.com/sbilibin2017/bookly/internal/logger"
	"github.com/sbilibin2017/bookly/internal/models"
	"github.com/sbilibin2017/bookly/internal/password"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.User) (*models.User, error)
}

// TokenEncoder issues signed tokens.
type TokenEncoder interface {
	Encode(ctx context.Context, identity jwt.UserIdentity, expiry time.Duration, refresh bool) (string, error)
}

// AuthService handles signup, login and token refresh.
type AuthService struct {
	reader UserReader
	writer UserWriter
	tokens TokenEncoder
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenEncoder) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		tokens: tokens,
	}
}

// UserExists reports whether an account is registered under email.
func (svc *AuthService) UserExists(ctx context.Context, email string) (bool, error) {
	user, err := svc.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// GetUserByEmail returns the user registered under email, or nil.
func (svc *AuthService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := svc.reader.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "err", err)
		return nil, err
	}
	return user, nil
}

// CreateUser registers a new unverified account with the default role.
// A taken email surfaces as apperrors.ErrUserAlreadyExists from the writer.
func (svc *AuthService) CreateUser(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, &models.User{
		UID:          uuid.New(),
		Username:     req.Username,
		Email:        normalizeEmail(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.DefaultRole,
		IsVerified:   false,
		PasswordHash: hash,
	})
	if err != nil {
		logger.Log.Errorw("failed to save user", "email", req.Email, "err", err)
		return nil, err
	}

	logger.Log.Infow("user created", "user_uid", user.UID)
	return user, nil
}

// Login checks the credentials and issues an access and a refresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, plaintext string) (access, refresh string, user *models.User, err error) {
	user, err = svc.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", nil, err
	}
	if user == nil {
		logger.Log.Warnw("login for unknown email", "email", email)
		return "", "", nil, apperrors.ErrInvalidCredentials
	}
	if !password.Verify(plaintext, user.PasswordHash) {
		logger.Log.Warnw("invalid credentials", "user_uid", user.UID)
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	identity := jwt.UserIdentity{Email: user.Email, UserUID: user.UID}

	access, err = svc.tokens.Encode(ctx, identity, 0, false)
	if err != nil {
		logger.Log.Errorw("failed to issue access token", "err", err)
		return "", "", nil, err
	}
	refresh, err = svc.tokens.Encode(ctx, identity, 0, true)
	if err != nil {
		logger.Log.Errorw("failed to issue refresh token", "err", err)
		return "", "", nil, err
	}

	return access, refresh, user, nil
}

// RefreshAccessToken issues a new access token for the identity carried by
// an already validated refresh token.
func (svc *AuthService) RefreshAccessToken(ctx context.Context, claims *jwt.Claims) (string, error) {
	if claims == nil || !claims.Refresh {
		return "", apperrors.ErrRefreshTokenRequired
	}

	token, err := svc.tokens.Encode(ctx, claims.User, 0, false)
	if err != nil {
		logger.Log.Errorw("failed to issue access token", "err", err)
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

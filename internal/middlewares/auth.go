package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/jwt"
	"github.com/sbilibin2017/bookly/internal/logger"
)

// Tokener defines the minimal interface needed by the auth middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Decode(ctx context.Context, tokenString string) (*jwt.Claims, error)
	Now() time.Time
}

// TokenKind selects which tokens an endpoint admits.
type TokenKind int

const (
	AnyToken TokenKind = iota
	AccessToken
	RefreshToken
)

func (k TokenKind) String() string {
	switch k {
	case AccessToken:
		return "access"
	case RefreshToken:
		return "refresh"
	default:
		return "any"
	}
}

// Authorize runs the bearer token checks for r and returns the admitted claims.
// Every rejection wraps one of the apperrors token kinds.
func Authorize(ctx context.Context, r *http.Request, tokener Tokener, kind TokenKind) (*jwt.Claims, error) {
	tokenString, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, err := tokener.Decode(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(tokener.Now()) {
		return nil, apperrors.ErrInvalidToken
	}

	switch kind {
	case AccessToken:
		if claims.Refresh {
			return nil, apperrors.ErrAccessTokenRequired
		}
	case RefreshToken:
		if !claims.Refresh {
			return nil, apperrors.ErrRefreshTokenRequired
		}
	}

	return claims, nil
}

// AuthMiddleware returns a middleware that admits requests carrying a valid
// bearer token of the given kind and stores its claims in the request context.
func AuthMiddleware(tokener Tokener, kind TokenKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, err := Authorize(ctx, r, tokener, kind)
			if err != nil {
				logger.Log.Warnw("authorization failed", "kind", kind.String(), "uri", r.RequestURI, "err", err)
				apperrors.Write(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.WithClaims(ctx, claims)))
		})
	}
}

// AccessTokenMiddleware admits access tokens only.
func AccessTokenMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return AuthMiddleware(tokener, AccessToken)
}

// RefreshTokenMiddleware admits refresh tokens only.
func RefreshTokenMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return AuthMiddleware(tokener, RefreshToken)
}

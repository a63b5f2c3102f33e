package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes.
const (
	DefaultAccessExpiration  = 3600 * time.Second
	DefaultRefreshExpiration = 48 * time.Hour
	DefaultAlgorithm         = "HS256"
)

var (
	// ErrExpiredToken is returned by Decode when the signature is valid but exp has passed.
	ErrExpiredToken = errors.New("token has expired")
	// ErrMalformedToken is returned by Decode for any other verification failure.
	ErrMalformedToken = errors.New("token is malformed or has an invalid signature")
)

// UserIdentity is the user data embedded in every token.
type UserIdentity struct {
	Email   string    `json:"email"`
	UserUID uuid.UUID `json:"user_uid"`
}

// Claims is the token payload: identity, expiry, jti and the refresh flag.
type Claims struct {
	User    UserIdentity `json:"user"`
	Refresh bool         `json:"refresh"`
	jwt.RegisteredClaims
}

// JWT encodes and decodes signed tokens with a symmetric secret.
type JWT struct {
	SecretKey  string        // Secret key for signing tokens
	AccessExp  time.Duration // Default lifetime of access tokens
	RefreshExp time.Duration // Default lifetime of refresh tokens

	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

// Opt configures a JWT.
type Opt func(*JWT) error

// WithSecretKey sets the signing secret.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) error {
		j.SecretKey = secret
		return nil
	}
}

// WithAlgorithm selects an HMAC signing algorithm (HS256, HS384 or HS512).
func WithAlgorithm(alg string) Opt {
	return func(j *JWT) error {
		method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
		if !ok {
			return fmt.Errorf("unsupported signing algorithm %q", alg)
		}
		j.method = method
		return nil
	}
}

// WithAccessExpiration sets the default access token lifetime.
func WithAccessExpiration(d time.Duration) Opt {
	return func(j *JWT) error {
		j.AccessExp = d
		return nil
	}
}

// WithRefreshExpiration sets the default refresh token lifetime.
func WithRefreshExpiration(d time.Duration) Opt {
	return func(j *JWT) error {
		j.RefreshExp = d
		return nil
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Opt {
	return func(j *JWT) error {
		j.now = now
		return nil
	}
}

// New creates a new JWT instance
func New(opts ...Opt) (*JWT, error) {
	j := &JWT{
		AccessExp:  DefaultAccessExpiration,
		RefreshExp: DefaultRefreshExpiration,
		method:     jwt.SigningMethodHS256,
		now:        time.Now,
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, err
		}
	}
	if j.SecretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}
	return j, nil
}

// Now returns the current time of the codec's clock.
func (j *JWT) Now() time.Time {
	return j.now()
}

// Encode signs a token for identity. A zero expiry selects the default
// lifetime for the token kind.
func (j *JWT) Encode(ctx context.Context, identity UserIdentity, expiry time.Duration, refresh bool) (string, error) {
	if expiry == 0 {
		expiry = j.AccessExp
		if refresh {
			expiry = j.RefreshExp
		}
	}

	now := j.now()
	claims := &Claims{
		User:    identity,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// Decode verifies tokenString and returns its claims.
func (j *JWT) Decode(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(j.SecretKey), nil
		},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		// Signatures are verified before claims, so an expiry error implies a valid signature.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

type claimsKey struct{}

// WithClaims stores the authenticated claims in ctx.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey{}).(*Claims)
	return claims
}

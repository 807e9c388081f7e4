// Package auth issues and verifies the signed tokens that carry the
// authenticated principal of a request.
package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"hrportal/backend/internal/entity"
)

const (
	RoleAdmin    = entity.RoleAdmin
	RoleEmployee = entity.RoleEmployee
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type ctxKey int

// Key is used to store/retrieve Claims from a context.Context.
const Key ctxKey = 1

var (
	ErrNoClaims     = errors.New("not logged in")
	ErrTokenRevoked = errors.New("token has been revoked")
	ErrTokenType    = errors.New("unexpected token type")
)

// Claims is the principal of a request.
type Claims struct {
	jwt.StandardClaims
	Username string      `json:"username"`
	Role     entity.Role `json:"role"`
	Type     string      `json:"type"`
}

// Authorized reports whether the claims hold one of roles.
func (c Claims) Authorized(roles ...entity.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// Revoker remembers tokens that were signed out before they expired.
type Revoker interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	Revoked(ctx context.Context, id string) (bool, error)
}

type Config struct {
	Key        string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Auth signs and validates HS256 tokens.
type Auth struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoker    Revoker
}

// New creates an Auth. revoker may be nil, in which case sign-out only
// discards the token on the client.
func New(cfg Config, revoker Revoker) (*Auth, error) {
	if cfg.Key == "" {
		return nil, errors.New("jwt key is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 12 * time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}

	return &Auth{
		key:        []byte(cfg.Key),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		revoker:    revoker,
	}, nil
}

// GenerateTokens returns a fresh access and refresh token for the user.
func (a *Auth) GenerateTokens(username string, role entity.Role) (string, string, error) {
	access, err := a.sign(username, role, TypeAccess, a.accessTTL)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refresh, err := a.sign(username, role, TypeRefresh, a.refreshTTL)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return access, refresh, nil
}

func (a *Auth) sign(username string, role entity.Role, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Username: username,
		Role:     role,
		Type:     typ,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

// ValidateToken parses an access token and checks it was not revoked.
func (a *Auth) ValidateToken(ctx context.Context, tokenStr string) (Claims, error) {
	return a.validate(ctx, tokenStr, TypeAccess)
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// refresh token is revoked.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := a.validate(ctx, refreshToken, TypeRefresh)
	if err != nil {
		return "", "", err
	}

	if err := a.Revoke(ctx, claims); err != nil {
		return "", "", err
	}

	return a.GenerateTokens(claims.Username, claims.Role)
}

// Revoke marks the token behind claims as unusable until it expires.
func (a *Auth) Revoke(ctx context.Context, claims Claims) error {
	if a.revoker == nil || claims.Id == "" {
		return nil
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}

	return errors.Wrap(a.revoker.Revoke(ctx, claims.Id, ttl), "revoking token")
}

func (a *Auth) validate(ctx context.Context, tokenStr, typ string) (Claims, error) {
	var claims Claims

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	}

	token, err := jwt.ParseWithClaims(tokenStr, &claims, keyFunc)
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.Type != typ {
		return Claims{}, ErrTokenType
	}

	if a.revoker != nil {
		revoked, err := a.revoker.Revoked(ctx, claims.Id)
		if err != nil {
			return Claims{}, errors.Wrap(err, "checking token revocation")
		}
		if revoked {
			return Claims{}, ErrTokenRevoked
		}
	}

	return claims, nil
}

// GetClaims returns the claims stored in ctx by the authentication
// middleware.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, ErrNoClaims
	}
	return claims, nil
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, Key, claims)
}

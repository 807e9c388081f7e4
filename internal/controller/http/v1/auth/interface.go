package auth

import (
	"context"

	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres/user"
)

type User interface {
	SignIn(ctx context.Context, request user.SignInRequest) (entity.User, error)
	ResetPassword(ctx context.Context, request user.ResetPasswordRequest) error
}

type Tokens interface {
	GenerateTokens(username string, role entity.Role) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Revoke(ctx context.Context, claims auth.Claims) error
}

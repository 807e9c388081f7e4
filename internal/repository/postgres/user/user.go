package user

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/service/hashing"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrCurrentPassword    = errors.New("Current password is incorrect")
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("username = ?", username).Scan(ctx)
	if err != nil {
		return entity.User{}, postgres.Classify(err, "selecting user")
	}

	return detail, nil
}

// SignIn returns the user whose credentials match request.
func (r Repository) SignIn(ctx context.Context, request SignInRequest) (entity.User, error) {
	if err := r.ValidateStruct(&request, "Username", "Password"); err != nil {
		return entity.User{}, err
	}

	detail, err := r.GetByUsername(ctx, request.Username)
	if errors.Is(err, postgres.ErrNotFound) {
		return entity.User{}, web.NewRequestError(ErrInvalidCredentials, http.StatusUnauthorized)
	}
	if err != nil {
		return entity.User{}, err
	}

	if !hashing.CheckPassword(detail.Password, request.Password) {
		return entity.User{}, web.NewRequestError(ErrInvalidCredentials, http.StatusUnauthorized)
	}

	return detail, nil
}

// ChangePassword changes the password of the signed in user.
func (r Repository) ChangePassword(ctx context.Context, request ChangePasswordRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "CurrentPassword", "NewPassword"); err != nil {
		return err
	}
	if request.NewPassword != request.ConfirmPassword {
		return web.NewRequestError(ErrPasswordMismatch, http.StatusBadRequest)
	}

	detail, err := r.GetByUsername(ctx, claims.Username)
	if err != nil {
		return err
	}
	if !hashing.CheckPassword(detail.Password, request.CurrentPassword) {
		return web.NewRequestError(ErrCurrentPassword, http.StatusBadRequest)
	}

	return r.setPassword(ctx, claims.Username, request.NewPassword)
}

// ResetPassword sets a new password for any user. Admins only.
func (r Repository) ResetPassword(ctx context.Context, request ResetPasswordRequest) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "Username", "Password"); err != nil {
		return err
	}

	return r.setPassword(ctx, request.Username, request.Password)
}

func (r Repository) setPassword(ctx context.Context, username, password string) error {
	hash, err := hashing.HashPassword(password)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	res, err := r.NewUpdate().Model((*entity.User)(nil)).
		Set("password = ?", hash).
		Where("username = ?", username).
		Exec(ctx)
	if err != nil {
		return postgres.Classify(err, "updating password")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return postgres.Classify(sql.ErrNoRows, "updating password")
	}

	return nil
}

package profile

import (
	"context"

	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres/employee"
	"hrportal/backend/internal/repository/postgres/user"
)

type Employee interface {
	UpdateProfile(ctx context.Context, empID string, request employee.UpdateProfileRequest) (entity.Employee, error)
	SetProfileImage(ctx context.Context, empID, path string) error
}

type User interface {
	ChangePassword(ctx context.Context, request user.ChangePasswordRequest) error
}

type Identity interface {
	EmpID(ctx context.Context) (string, error)
}

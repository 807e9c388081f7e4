package employee

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/service/hashing"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create adds an employee and, if a password is given, its login. Both rows
// are written in one transaction.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Employee, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return entity.Employee{}, err
	}

	var detail entity.Employee
	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		detail, err = create(ctx, tx, request)
		return err
	})
	if err != nil {
		return entity.Employee{}, postgres.Classify(err, "creating employee")
	}

	return detail, nil
}

// CreateMany adds all employees in one transaction. Any failure rolls the
// whole batch back.
func (r Repository) CreateMany(ctx context.Context, requests []CreateRequest) (int, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return 0, err
	}

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, request := range requests {
			if _, err := create(ctx, tx, request); err != nil {
				return errors.Wrapf(err, "employee %s", request.EmpID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, postgres.Classify(err, "importing employees")
	}

	return len(requests), nil
}

func create(ctx context.Context, db bun.IDB, request CreateRequest) (entity.Employee, error) {
	request.EmpID = strings.TrimSpace(request.EmpID)
	if err := web.ValidateRequired(&request, "EmpID", "Name", "Email", "Department"); err != nil {
		return entity.Employee{}, err
	}
	if request.JoinDate != "" {
		joined, err := date.ParseDate(request.JoinDate)
		if err != nil {
			return entity.Employee{}, web.NewRequestError(errors.Wrap(err, "join_date"), http.StatusBadRequest)
		}
		request.JoinDate = joined.String()
	}

	username := request.EmpID
	detail := entity.Employee{
		EmpID:         request.EmpID,
		Name:          request.Name,
		Email:         request.Email,
		Department:    request.Department,
		Salary:        request.Salary,
		JoinDate:      request.JoinDate,
		Qualification: request.Qualification,
		Username:      &username,
	}

	if _, err := db.NewInsert().Model(&detail).Returning("id").Exec(ctx); err != nil {
		return entity.Employee{}, err
	}

	if request.Password == "" {
		return detail, nil
	}

	hash, err := hashing.HashPassword(request.Password)
	if err != nil {
		return entity.Employee{}, err
	}

	login := entity.User{Username: username, Password: hash, Role: entity.RoleEmployee}
	if _, err := db.NewInsert().Model(&login).On("CONFLICT (username) DO NOTHING").Exec(ctx); err != nil {
		return entity.Employee{}, err
	}

	return detail, nil
}

// List returns every employee ordered by emp_id.
func (r Repository) List(ctx context.Context) ([]entity.Employee, error) {
	list := make([]entity.Employee, 0)

	err := r.NewSelect().Model(&list).Order("emp_id").Scan(ctx)
	if err != nil {
		return nil, postgres.Classify(err, "selecting employees")
	}

	return list, nil
}

func (r Repository) GetByEmpID(ctx context.Context, empID string) (entity.Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().Model(&detail).Where("emp_id = ?", empID).Scan(ctx)
	if err != nil {
		return entity.Employee{}, postgres.Classify(err, "selecting employee")
	}

	return detail, nil
}

// EmpIDByLogin matches login against both username and emp_id.
func (r Repository) EmpIDByLogin(ctx context.Context, login string) (string, error) {
	var empID string

	err := r.NewSelect().Model((*entity.Employee)(nil)).
		Column("emp_id").
		Where("(username = ? OR emp_id = ?)", login, login).
		OrderExpr("emp_id = ? DESC", login).
		Limit(1).
		Scan(ctx, &empID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", postgres.Classify(err, "resolving employee")
	}

	return empID, nil
}

// UpdateProfile overwrites the editable profile fields.
func (r Repository) UpdateProfile(ctx context.Context, empID string, request UpdateProfileRequest) (entity.Employee, error) {
	if err := r.ValidateStruct(&request, "Name", "Email", "Department"); err != nil {
		return entity.Employee{}, err
	}

	detail := entity.Employee{
		EmpID:         empID,
		Name:          request.Name,
		Email:         request.Email,
		Department:    request.Department,
		Qualification: request.Qualification,
	}

	res, err := r.NewUpdate().Model(&detail).
		Column("name", "email", "department", "qualification").
		Where("emp_id = ?", empID).
		Exec(ctx)
	if err != nil {
		return entity.Employee{}, postgres.Classify(err, "updating profile")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.Employee{}, postgres.Classify(sql.ErrNoRows, "updating profile")
	}

	return r.GetByEmpID(ctx, empID)
}

func (r Repository) SetProfileImage(ctx context.Context, empID, path string) error {
	res, err := r.NewUpdate().Model((*entity.Employee)(nil)).
		Set("profile_image = ?", path).
		Where("emp_id = ?", empID).
		Exec(ctx)
	if err != nil {
		return postgres.Classify(err, "updating profile image")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return postgres.Classify(sql.ErrNoRows, "updating profile image")
	}

	return nil
}

func (r Repository) Count(ctx context.Context) (int, error) {
	count, err := r.NewSelect().Model((*entity.Employee)(nil)).Count(ctx)
	if err != nil {
		return 0, postgres.Classify(err, "counting employees")
	}

	return count, nil
}

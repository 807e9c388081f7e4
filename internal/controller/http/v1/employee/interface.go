package employee

import (
	"context"

	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres/employee"
)

type Employee interface {
	Create(ctx context.Context, request employee.CreateRequest) (entity.Employee, error)
	CreateMany(ctx context.Context, requests []employee.CreateRequest) (int, error)
	List(ctx context.Context) ([]entity.Employee, error)
	GetByEmpID(ctx context.Context, empID string) (entity.Employee, error)
}

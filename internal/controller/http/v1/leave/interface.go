package leave

import (
	"context"

	"hrportal/backend/internal/entity"
	leave_service "hrportal/backend/internal/service/leave"
)

type Leave interface {
	File(ctx context.Context, empID string, req leave_service.FileRequest) (*entity.Leave, error)
	ListForEmployee(ctx context.Context, empID string) ([]entity.Leave, error)
	ListPending(ctx context.Context) ([]entity.NamedLeave, error)
	Approve(ctx context.Context, id int64) (*entity.Leave, error)
	Reject(ctx context.Context, id int64) (*entity.Leave, error)
}

type Identity interface {
	EmpID(ctx context.Context) (string, error)
}

package dashboard

import (
	"context"

	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/service/activity"
	attendance_service "hrportal/backend/internal/service/attendance"
	leave_service "hrportal/backend/internal/service/leave"
)

type Employee interface {
	List(ctx context.Context) ([]entity.Employee, error)
	Count(ctx context.Context) (int, error)
	GetByEmpID(ctx context.Context, empID string) (entity.Employee, error)
}

type Leave interface {
	ListForEmployee(ctx context.Context, empID string) ([]entity.Leave, error)
	ListPending(ctx context.Context) ([]entity.NamedLeave, error)
	Counts(ctx context.Context, empID string) (leave_service.Counts, error)
}

type Attendance interface {
	Today(ctx context.Context, empID string) (*entity.Attendance, error)
	Summary(rec *entity.Attendance) attendance_service.DayStatus
}

type Presence interface {
	CountPresent(ctx context.Context, day string) (int, error)
}

type Activity interface {
	Recent(ctx context.Context) ([]activity.Item, error)
}

type Identity interface {
	EmpID(ctx context.Context) (string, error)
}

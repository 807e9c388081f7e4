package attendance

import (
	"context"

	"hrportal/backend/internal/entity"
	attendance_service "hrportal/backend/internal/service/attendance"
)

type Attendance interface {
	Mark(ctx context.Context, empID string, action attendance_service.Action) (*entity.Attendance, error)
	QueryMonth(ctx context.Context, empID string, year, month int) (map[string]attendance_service.DayStatus, error)
	Summary(rec *entity.Attendance) attendance_service.DayStatus
}

type Employee interface {
	GetByEmpID(ctx context.Context, empID string) (entity.Employee, error)
}

type Identity interface {
	EmpID(ctx context.Context) (string, error)
}

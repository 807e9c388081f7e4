package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/service/identity"
)

type Controller struct {
	employee   Employee
	leave      Leave
	attendance Attendance
	presence   Presence
	activity   Activity
	identity   Identity
	now        func() time.Time
}

func NewController(employee Employee, leave Leave, attendance Attendance, presence Presence,
	activity Activity, identity Identity, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}

	return &Controller{
		employee:   employee,
		leave:      leave,
		attendance: attendance,
		presence:   presence,
		activity:   activity,
		identity:   identity,
		now:        now,
	}
}

// adminCard stands in for the administrator when no employee row exists
// for the admin account.
func adminCard() entity.Employee {
	return entity.Employee{
		EmpID:      identity.AdminEmpID,
		Name:       "Admin",
		Email:      "admin@company.com",
		Department: "HR",
		JoinDate:   "2020-01-01",
	}
}

func (uc Controller) Admin(c *web.Context) error {
	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var response AdminResponse

	if response.Employees, err = uc.employee.List(c.Ctx); err != nil {
		return c.RespondError(err)
	}
	if response.PendingLeaves, err = uc.leave.ListPending(c.Ctx); err != nil {
		return c.RespondError(err)
	}
	if response.TotalEmployees, err = uc.employee.Count(c.Ctx); err != nil {
		return c.RespondError(err)
	}

	counts, err := uc.leave.Counts(c.Ctx, "")
	if err != nil {
		return c.RespondError(err)
	}
	response.PendingLeavesCount = counts.Pending

	if response.TodayAttendance, err = uc.presence.CountPresent(c.Ctx, uc.now().Format(entity.DayLayout)); err != nil {
		return c.RespondError(err)
	}
	if response.AttendanceStatus, err = uc.today(c.Ctx, empID); err != nil {
		return c.RespondError(err)
	}
	if response.RecentActivity, err = uc.activity.Recent(c.Ctx); err != nil {
		return c.RespondError(err)
	}

	response.CurrentUser, err = uc.employee.GetByEmpID(c.Ctx, empID)
	if errors.Is(err, postgres.ErrNotFound) {
		response.CurrentUser, err = adminCard(), nil
	}
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   response,
		"error":  nil,
	}, http.StatusOK)
}

func (uc Controller) Employee(c *web.Context) error {
	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var response EmployeeResponse

	if response.CurrentUser, err = uc.employee.GetByEmpID(c.Ctx, empID); err != nil {
		return c.RespondError(err)
	}

	counts, err := uc.leave.Counts(c.Ctx, empID)
	if err != nil {
		return c.RespondError(err)
	}
	response.MyLeavesCount = counts.Total
	response.MyPendingLeaves = counts.Pending

	if response.AttendanceStatus, err = uc.today(c.Ctx, empID); err != nil {
		return c.RespondError(err)
	}
	if response.MyLeaves, err = uc.leave.ListForEmployee(c.Ctx, empID); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   response,
		"error":  nil,
	}, http.StatusOK)
}

func (uc Controller) today(ctx context.Context, empID string) (*TodayStatus, error) {
	rec, err := uc.attendance.Today(ctx, empID)
	if err != nil || rec == nil {
		return nil, err
	}

	return &TodayStatus{WorkDay: rec.WorkDay, DayStatus: uc.attendance.Summary(rec)}, nil
}

package attendance

import (
	"fmt"
	"net/http"
	"reflect"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/service"
	attendance_service "hrportal/backend/internal/service/attendance"
)

type Controller struct {
	attendance Attendance
	employee   Employee
	identity   Identity
}

func NewController(attendance Attendance, employee Employee, identity Identity) *Controller {
	return &Controller{attendance: attendance, employee: employee, identity: identity}
}

// Mark records a login or logout for the signed in employee. The action
// defaults to login.
func (uc Controller) Mark(c *web.Context) error {
	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var request attendance.MarkRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	if request.Action == "" {
		request.Action = attendance_service.ActionLogin
	}

	rec, err := uc.attendance.Mark(c.Ctx, empID, request.Action)
	if err != nil {
		return c.RespondError(err)
	}

	summary := uc.attendance.Summary(rec)

	return c.Respond(attendance.MarkResponse{
		Success:    true,
		Action:     request.Action,
		LoginTime:  summary.LoginTime,
		LogoutTime: summary.LogoutTime,
	}, http.StatusOK)
}

func (uc Controller) GetMonth(c *web.Context) error {
	month := c.GetParam(reflect.Int, "month").(int)
	year := c.GetParam(reflect.Int, "year").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	days, err := uc.attendance.QueryMonth(c.Ctx, empID, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(attendance.MonthResponse{Attendance: days}, http.StatusOK)
}

// GetReport renders the month of the signed in employee as a PDF.
func (uc Controller) GetReport(c *web.Context) error {
	month := c.GetParam(reflect.Int, "month").(int)
	year := c.GetParam(reflect.Int, "year").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	days, err := uc.attendance.QueryMonth(c.Ctx, empID, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.employee.GetByEmpID(c.Ctx, empID)
	if err != nil {
		return c.RespondError(err)
	}

	pdf, err := service.AttendanceReport(detail, year, month, days)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"attendance_%s_%04d_%02d.pdf\"", empID, year, month))
	c.Data(http.StatusOK, "application/pdf", pdf)

	return nil
}

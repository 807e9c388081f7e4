package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/service/activity"
	attendance_service "hrportal/backend/internal/service/attendance"
	leave_service "hrportal/backend/internal/service/leave"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var now = time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

type fakeIdentity string

func (f fakeIdentity) EmpID(context.Context) (string, error) { return string(f), nil }

type fakeEmployee struct {
	known map[string]entity.Employee
}

func (f fakeEmployee) List(context.Context) ([]entity.Employee, error) {
	return []entity.Employee{f.known["EMP001"]}, nil
}

func (f fakeEmployee) Count(context.Context) (int, error) { return len(f.known), nil }

func (f fakeEmployee) GetByEmpID(_ context.Context, empID string) (entity.Employee, error) {
	e, ok := f.known[empID]
	if !ok {
		return entity.Employee{}, postgres.Classify(sql.ErrNoRows, "selecting employee")
	}
	return e, nil
}

type fakeLeave struct {
	counted []string
}

func (f *fakeLeave) ListForEmployee(_ context.Context, empID string) ([]entity.Leave, error) {
	return []entity.Leave{{ID: 1, EmpID: empID, Status: entity.LeavePending}}, nil
}

func (f *fakeLeave) ListPending(context.Context) ([]entity.NamedLeave, error) {
	return []entity.NamedLeave{{Leave: entity.Leave{ID: 1, EmpID: "EMP001"}, Name: "John Doe"}}, nil
}

func (f *fakeLeave) Counts(_ context.Context, empID string) (leave_service.Counts, error) {
	f.counted = append(f.counted, empID)
	return leave_service.Counts{Total: 4, Pending: 3}, nil
}

type fakeAttendance struct{}

func (fakeAttendance) Today(_ context.Context, empID string) (*entity.Attendance, error) {
	if empID != "EMP001" {
		return nil, nil
	}
	login := now.Add(-time.Hour)
	return &entity.Attendance{EmpID: empID, WorkDay: "2026-02-02", Status: entity.AttendancePresent, LoginAt: &login}, nil
}

func (fakeAttendance) Summary(rec *entity.Attendance) attendance_service.DayStatus {
	v := rec.LoginAt.Format(attendance_service.ClockLayout)
	return attendance_service.DayStatus{Status: rec.Status, LoginTime: &v}
}

type fakePresence struct {
	days []string
}

func (f *fakePresence) CountPresent(_ context.Context, day string) (int, error) {
	f.days = append(f.days, day)
	return 2, nil
}

type fakeActivity struct{}

func (fakeActivity) Recent(context.Context) ([]activity.Item, error) {
	return []activity.Item{{Kind: activity.KindAttendance, Message: "John Doe marked attendance", Time: "09:00"}}, nil
}

func serve(t *testing.T, empID string, handler func(Controller) web.Handler) (map[string]interface{}, *fakeLeave, *fakePresence) {
	t.Helper()

	employees := fakeEmployee{known: map[string]entity.Employee{
		"EMP001": {EmpID: "EMP001", Name: "John Doe", Department: "Engineering"},
	}}
	leaves := &fakeLeave{}
	presence := &fakePresence{}
	uc := NewController(employees, leaves, fakeAttendance{}, presence, fakeActivity{}, fakeIdentity(empID),
		func() time.Time { return now })

	app := web.NewApp()
	app.Get("/", handler(*uc))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Data, leaves, presence
}

func TestAdminFallsBackToAdminCard(t *testing.T) {
	data, leaves, presence := serve(t, "ADMIN001", func(uc Controller) web.Handler { return uc.Admin })

	user := data["current_user"].(map[string]interface{})
	if user["emp_id"] != "ADMIN001" || user["name"] != "Admin" || user["department"] != "HR" {
		t.Fatalf("unexpected current user %v", user)
	}
	if data["total_employees"] != float64(1) || data["pending_leaves_count"] != float64(3) || data["today_attendance"] != float64(2) {
		t.Fatalf("unexpected totals %v", data)
	}
	if data["attendance_status"] != nil {
		t.Fatalf("admin has no attendance today, got %v", data["attendance_status"])
	}
	if len(leaves.counted) != 1 || leaves.counted[0] != "" {
		t.Fatalf("admin counts must cover every employee, got %v", leaves.counted)
	}
	if len(presence.days) != 1 || presence.days[0] != "2026-02-02" {
		t.Fatalf("unexpected presence day %v", presence.days)
	}
	if items := data["recent_activity"].([]interface{}); len(items) != 1 {
		t.Fatalf("unexpected activity %v", items)
	}
}

func TestEmployeeDashboard(t *testing.T) {
	data, leaves, _ := serve(t, "EMP001", func(uc Controller) web.Handler { return uc.Employee })

	if data["my_leaves_count"] != float64(4) || data["my_pending_leaves"] != float64(3) {
		t.Fatalf("unexpected counts %v", data)
	}
	if leaves.counted[0] != "EMP001" {
		t.Fatalf("expected counts for EMP001, got %v", leaves.counted)
	}

	status := data["attendance_status"].(map[string]interface{})
	if status["work_day"] != "2026-02-02" || status["login_time"] != "09:00:00" || status["logout_time"] != nil {
		t.Fatalf("unexpected attendance status %v", status)
	}
}

package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	attendance_service "hrportal/backend/internal/service/attendance"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdentity string

func (f fakeIdentity) EmpID(context.Context) (string, error) {
	return string(f), nil
}

type fakeEmployee struct{}

func (fakeEmployee) GetByEmpID(_ context.Context, empID string) (entity.Employee, error) {
	return entity.Employee{EmpID: empID, Name: "John Doe", Department: "Engineering"}, nil
}

type fakeAttendance struct {
	actions []attendance_service.Action
	months  [][2]int
}

func (f *fakeAttendance) Mark(_ context.Context, empID string, action attendance_service.Action) (*entity.Attendance, error) {
	f.actions = append(f.actions, action)
	login := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	rec := &entity.Attendance{EmpID: empID, WorkDay: "2026-02-02", Status: entity.AttendancePresent, LoginAt: &login}
	if action == attendance_service.ActionLogout {
		logout := login.Add(8 * time.Hour)
		rec.LogoutAt = &logout
	}
	return rec, nil
}

func (f *fakeAttendance) QueryMonth(_ context.Context, _ string, year, month int) (map[string]attendance_service.DayStatus, error) {
	f.months = append(f.months, [2]int{year, month})
	login := "09:00:00"
	return map[string]attendance_service.DayStatus{
		"2026-02-02": {Status: entity.AttendancePresent, LoginTime: &login},
	}, nil
}

func (f *fakeAttendance) Summary(rec *entity.Attendance) attendance_service.DayStatus {
	s := attendance_service.DayStatus{Status: rec.Status}
	if rec.LoginAt != nil {
		v := rec.LoginAt.Format(attendance_service.ClockLayout)
		s.LoginTime = &v
	}
	if rec.LogoutAt != nil {
		v := rec.LogoutAt.Format(attendance_service.ClockLayout)
		s.LogoutTime = &v
	}
	return s
}

func newApp(f *fakeAttendance) *web.App {
	uc := NewController(f, fakeEmployee{}, fakeIdentity("EMP001"))

	app := web.NewApp()
	app.Post("/api/v1/attendance", uc.Mark)
	app.Get("/api/v1/attendance/:month/:year", uc.GetMonth)
	app.Get("/api/v1/report/attendance/:month/:year", uc.GetReport)
	return app
}

func TestMarkDefaultsToLogin(t *testing.T) {
	f := &fakeAttendance{}
	app := newApp(f)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.actions) != 1 || f.actions[0] != attendance_service.ActionLogin {
		t.Fatalf("expected a login, got %v", f.actions)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != true || body["login_time"] != "09:00:00" || body["logout_time"] != nil {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestMarkLogout(t *testing.T) {
	f := &fakeAttendance{}
	app := newApp(f)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", strings.NewReader(`{"action":"logout"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"logout_time":"17:00:00"`) {
		t.Fatalf("expected logout time in %s", rec.Body.String())
	}
}

func TestGetMonth(t *testing.T) {
	f := &fakeAttendance{}
	app := newApp(f)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/2/2026", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(f.months) != 1 || f.months[0] != [2]int{2026, 2} {
		t.Fatalf("unexpected month query %v", f.months)
	}

	var body struct {
		Attendance map[string]attendance_service.DayStatus `json:"attendance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if day, ok := body.Attendance["2026-02-02"]; !ok || *day.LoginTime != "09:00:00" || day.LogoutTime != nil {
		t.Fatalf("unexpected month %+v", body.Attendance)
	}

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/feb/2026", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non numeric month, got %d", rec.Code)
	}
}

func TestGetReport(t *testing.T) {
	app := newApp(&fakeAttendance{})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report/attendance/2/2026", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatalf("body is not a pdf")
	}
}

package service

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"hrportal/backend/internal/entity"
	attendance_service "hrportal/backend/internal/service/attendance"
)

func str(s string) *string { return &s }

func TestAttendanceReport(t *testing.T) {
	days := map[string]attendance_service.DayStatus{
		"2026-02-02": {Status: entity.AttendancePresent, LoginTime: str("09:00:00"), LogoutTime: str("18:00:00")},
		"2026-02-03": {Status: entity.AttendancePresent, LoginTime: str("09:30:00")},
		"2026-02-04": {Status: entity.AttendanceAbsent},
	}
	employee := entity.Employee{EmpID: "EMP001", Name: "John Doe", Department: "Development"}

	pdf, err := AttendanceReport(employee, 2026, 2, days)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}
}

func TestWorkedHours(t *testing.T) {
	tests := []struct {
		name string
		day  attendance_service.DayStatus
		want time.Duration
	}{
		{"closed", attendance_service.DayStatus{LoginTime: str("09:00:00"), LogoutTime: str("18:00:00")}, 9 * time.Hour},
		{"open", attendance_service.DayStatus{LoginTime: str("09:00:00")}, 0},
		{"absent", attendance_service.DayStatus{}, 0},
		{"garbled", attendance_service.DayStatus{LoginTime: str("9am"), LogoutTime: str("18:00:00")}, 0},
	}

	for _, tt := range tests {
		if got := WorkedHours(tt.day); got != tt.want {
			t.Errorf("%s: WorkedHours() = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := formatDuration(9*time.Hour + 5*time.Minute); got != "09:05" {
		t.Errorf("formatDuration() = %q", got)
	}
}

func TestEmployeeQRCode(t *testing.T) {
	data, err := EmployeeQRCode("EMP001")
	if err != nil {
		t.Fatalf("qr code: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != QRCodeSize {
		t.Fatalf("unexpected size %v", b)
	}

	if _, err := EmployeeQRCode(""); err == nil {
		t.Fatalf("expected empty emp_id to fail")
	}
}

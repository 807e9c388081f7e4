package service

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"

	"hrportal/backend/internal/entity"
	attendance_service "hrportal/backend/internal/service/attendance"
)

// AttendanceReport renders one employee's month as a PDF table with a
// worked hours column and a total.
func AttendanceReport(employee entity.Employee, year, month int, days map[string]attendance_service.DayStatus) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Attendance %s %04d-%02d", employee.EmpID, year, month), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Attendance report: %s %d", time.Month(month), year), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s (%s), %s", employee.Name, employee.EmpID, employee.Department), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{40, 30, 35, 35, 30}
	headers := []string{"Date", "Status", "Login", "Logout", "Hours"}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var total time.Duration
	pdf.SetFont("Helvetica", "", 10)
	for _, day := range keys {
		d := days[day]
		worked := WorkedHours(d)
		total += worked

		hours := ""
		if worked > 0 {
			hours = formatDuration(worked)
		}

		row := []string{day, string(d.Status), deref(d.LoginTime), deref(d.LogoutTime), hours}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, formatDuration(total), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering attendance report")
	}

	return buf.Bytes(), nil
}

// WorkedHours is the time between login and logout of a closed day.
func WorkedHours(d attendance_service.DayStatus) time.Duration {
	if d.LoginTime == nil || d.LogoutTime == nil {
		return 0
	}

	in, err := time.Parse(attendance_service.ClockLayout, *d.LoginTime)
	if err != nil {
		return 0
	}
	out, err := time.Parse(attendance_service.ClockLayout, *d.LogoutTime)
	if err != nil || out.Before(in) {
		return 0
	}

	return out.Sub(in)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

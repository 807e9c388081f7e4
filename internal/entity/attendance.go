package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// MaxShift is the longest working duration a single day can record. A shift
// left open longer than this is closed at exactly login + MaxShift.
const MaxShift = 9 * time.Hour

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// DayLayout is the ISO date format work days are keyed by.
const DayLayout = "2006-01-02"

type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	ID       int64            `json:"id"         bun:"id,pk,autoincrement"`
	EmpID    string           `json:"emp_id"     bun:"emp_id"`
	WorkDay  string           `json:"work_day"   bun:"work_day"`
	Status   AttendanceStatus `json:"status"     bun:"status"`
	LoginAt  *time.Time       `json:"login_at"   bun:"login_at"`
	LogoutAt *time.Time       `json:"logout_at"  bun:"logout_at"`
}

// ShiftComplete reports whether the day has been closed, either by a logout
// or by the auto-cap.
func (a *Attendance) ShiftComplete() bool {
	return a != nil && a.LogoutAt != nil
}

// AutoCap closes an open shift once MaxShift has elapsed since login. The
// logout is set to login + MaxShift, never to now. It reports whether the
// record changed.
func (a *Attendance) AutoCap(now time.Time) bool {
	if a == nil || a.LoginAt == nil || a.LogoutAt != nil {
		return false
	}

	cutoff := a.LoginAt.Add(MaxShift)
	if now.Before(cutoff) {
		return false
	}

	a.LogoutAt = &cutoff
	return true
}

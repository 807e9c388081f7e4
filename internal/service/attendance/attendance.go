// Package attendance keeps the per employee, per day check-in/check-out
// ledger and applies the 9 hour auto-cap lazily whenever a day is touched.
package attendance

import (
	"context"
	"net/http"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
)

var (
	ErrShiftComplete = errors.New("Today's 9 working hours are already completed.")
	ErrNoAttendance  = errors.New("no attendance record for today")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
	ErrInvalidAction = errors.New("action must be login or logout")
)

// ClockLayout is how login and logout times are shown.
const ClockLayout = "15:04:05"

type Action string

const (
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
)

// Store persists attendance rows. Day returns nil, nil when the employee
// has no row for the day.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
	Day(ctx context.Context, empID, day string) (*entity.Attendance, error)
	Create(ctx context.Context, rec *entity.Attendance) error
	Update(ctx context.Context, rec *entity.Attendance) error
	Range(ctx context.Context, empID, from, to string) ([]entity.Attendance, error)
}

// DayStatus is one day of the month view.
type DayStatus struct {
	Status     entity.AttendanceStatus `json:"status"`
	LoginTime  *string                 `json:"login_time"`
	LogoutTime *string                 `json:"logout_time"`
}

type Ledger struct {
	store Store
	now   func() time.Time
}

// NewLedger creates a Ledger. now decides both the current instant and the
// location work days are cut in.
func NewLedger(store Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: store, now: now}
}

// Mark applies a login or logout action for the employee.
func (l *Ledger) Mark(ctx context.Context, empID string, action Action) (*entity.Attendance, error) {
	switch action {
	case ActionLogin, "":
		return l.RecordLogin(ctx, empID)
	case ActionLogout:
		return l.RecordLogout(ctx, empID)
	default:
		return nil, web.NewRequestError(ErrInvalidAction, http.StatusBadRequest)
	}
}

// RecordLogin marks the employee present with login time now. A day whose
// shift is already closed, manually or by the auto-cap, rejects the login.
func (l *Ledger) RecordLogin(ctx context.Context, empID string) (*entity.Attendance, error) {
	now := l.now()
	day := now.Format(entity.DayLayout)

	var saved *entity.Attendance
	err := l.store.RunInTx(ctx, func(ctx context.Context, store Store) error {
		rec, err := capped(ctx, store, empID, day, now)
		if err != nil {
			return err
		}

		if rec.ShiftComplete() {
			return web.NewRequestError(ErrShiftComplete, http.StatusBadRequest)
		}

		if rec == nil {
			rec = &entity.Attendance{
				EmpID:   empID,
				WorkDay: day,
				Status:  entity.AttendancePresent,
				LoginAt: &now,
			}
			if err := store.Create(ctx, rec); err != nil {
				return err
			}
			saved = rec
			return nil
		}

		rec.Status = entity.AttendancePresent
		rec.LoginAt = &now
		if err := store.Update(ctx, rec); err != nil {
			return err
		}
		saved = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// RecordLogout closes today's shift at now. The auto-cap runs first, so an
// overdue shift keeps its capped logout time. The first logout of a day
// wins: a later logout returns the record unchanged.
func (l *Ledger) RecordLogout(ctx context.Context, empID string) (*entity.Attendance, error) {
	now := l.now()
	day := now.Format(entity.DayLayout)

	var saved *entity.Attendance
	err := l.store.RunInTx(ctx, func(ctx context.Context, store Store) error {
		rec, err := capped(ctx, store, empID, day, now)
		if err != nil {
			return err
		}
		if rec == nil {
			return web.NewRequestError(ErrNoAttendance, http.StatusNotFound)
		}

		if !rec.ShiftComplete() {
			rec.LogoutAt = &now
			if err := store.Update(ctx, rec); err != nil {
				return err
			}
		}

		saved = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// Today returns the employee's record for the current day with the auto-cap
// applied, or nil if there is none.
func (l *Ledger) Today(ctx context.Context, empID string) (*entity.Attendance, error) {
	now := l.now()
	day := now.Format(entity.DayLayout)

	var rec *entity.Attendance
	err := l.store.RunInTx(ctx, func(ctx context.Context, store Store) error {
		var err error
		rec, err = capped(ctx, store, empID, day, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// QueryMonth returns the employee's records in the given month keyed by ISO
// date.
func (l *Ledger) QueryMonth(ctx context.Context, empID string, year, month int) (map[string]DayStatus, error) {
	if month < 1 || month > 12 {
		return nil, web.NewRequestError(ErrInvalidMonth, http.StatusBadRequest)
	}
	if year < 1 {
		return nil, web.NewRequestError(errors.New("year must be positive"), http.StatusBadRequest)
	}

	first := date.Date{Time: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)}
	next := date.Date{Time: first.AddDate(0, 1, 0)}

	today := l.now().Format(entity.DayLayout)
	if today >= first.String() && today < next.String() {
		if _, err := l.Today(ctx, empID); err != nil {
			return nil, err
		}
	}

	records, err := l.store.Range(ctx, empID, first.String(), next.String())
	if err != nil {
		return nil, err
	}

	days := make(map[string]DayStatus, len(records))
	for i := range records {
		days[records[i].WorkDay] = l.Summary(&records[i])
	}

	return days, nil
}

// Summary renders a record with wall clock times in the ledger's location.
func (l *Ledger) Summary(rec *entity.Attendance) DayStatus {
	loc := l.now().Location()

	s := DayStatus{Status: rec.Status}
	if rec.LoginAt != nil {
		t := rec.LoginAt.In(loc).Format(ClockLayout)
		s.LoginTime = &t
	}
	if rec.LogoutAt != nil {
		t := rec.LogoutAt.In(loc).Format(ClockLayout)
		s.LogoutTime = &t
	}
	return s
}

// AutoCap closes rec if its shift has run for the maximum duration and
// reports whether it changed. Callers persist the change.
func AutoCap(rec *entity.Attendance, now time.Time) bool {
	return rec.AutoCap(now)
}

func capped(ctx context.Context, store Store, empID, day string, now time.Time) (*entity.Attendance, error) {
	rec, err := store.Day(ctx, empID, day)
	if err != nil {
		return nil, err
	}

	if AutoCap(rec, now) {
		if err := store.Update(ctx, rec); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

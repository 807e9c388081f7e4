// Package leave keeps leave requests and their pending -> approved|rejected
// lifecycle.
package leave

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
)

var (
	ErrNotFound   = errors.New("leave request not found")
	ErrNotPending = errors.New("leave request has already been decided")
	ErrDates      = errors.New("from_date must not be after to_date")
)

// DefaultType is used when a request names no leave type.
const DefaultType = "casual"

// Store persists leave requests. Get returns nil, nil for an unknown id.
type Store interface {
	Create(ctx context.Context, l *entity.Leave) error
	Get(ctx context.Context, id int64) (*entity.Leave, error)
	// Transition moves the leave to next only while it is in from and
	// reports whether a row changed.
	Transition(ctx context.Context, id int64, from, next entity.LeaveStatus) (bool, error)
	ListByEmployee(ctx context.Context, empID string) ([]entity.Leave, error)
	ListPending(ctx context.Context) ([]entity.NamedLeave, error)
	Count(ctx context.Context, empID string, status entity.LeaveStatus) (int, error)
}

type FileRequest struct {
	FromDate string `json:"from_date" form:"from_date"`
	ToDate   string `json:"to_date"   form:"to_date"`
	Type     string `json:"type"      form:"type"`
	Reason   string `json:"reason"    form:"reason"`
}

type Counts struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
}

type Ledger struct {
	store Store
	now   func() time.Time
}

func NewLedger(store Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: store, now: now}
}

// NormalizeType turns labels like "Sick Leave" into "sick".
func NormalizeType(s string) string {
	s = strings.TrimSpace(strings.Replace(s, " Leave", "", 1))
	if s == "" {
		return DefaultType
	}
	return strings.ToLower(s)
}

// File records a new pending request. Every call creates a new record.
func (l *Ledger) File(ctx context.Context, empID string, req FileRequest) (*entity.Leave, error) {
	if err := web.ValidateRequired(req, "FromDate", "ToDate"); err != nil {
		return nil, err
	}

	from, err := date.ParseDate(req.FromDate)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "from_date"), http.StatusBadRequest)
	}
	to, err := date.ParseDate(req.ToDate)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "to_date"), http.StatusBadRequest)
	}
	if from.After(to.Time) {
		return nil, web.NewRequestError(ErrDates, http.StatusBadRequest)
	}

	rec := &entity.Leave{
		EmpID:     empID,
		FromDate:  from.String(),
		ToDate:    to.String(),
		Type:      NormalizeType(req.Type),
		Reason:    strings.TrimSpace(req.Reason),
		Status:    entity.LeavePending,
		AppliedAt: l.now(),
	}
	if err := l.store.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// ListForEmployee returns the employee's requests, newest applied first.
func (l *Ledger) ListForEmployee(ctx context.Context, empID string) ([]entity.Leave, error) {
	return l.store.ListByEmployee(ctx, empID)
}

// ListPending returns every pending request with the employee name, newest
// first.
func (l *Ledger) ListPending(ctx context.Context) ([]entity.NamedLeave, error) {
	return l.store.ListPending(ctx)
}

func (l *Ledger) Approve(ctx context.Context, id int64) (*entity.Leave, error) {
	return l.decide(ctx, id, entity.LeaveApproved)
}

func (l *Ledger) Reject(ctx context.Context, id int64) (*entity.Leave, error) {
	return l.decide(ctx, id, entity.LeaveRejected)
}

func (l *Ledger) Counts(ctx context.Context, empID string) (Counts, error) {
	total, err := l.store.Count(ctx, empID, "")
	if err != nil {
		return Counts{}, err
	}
	pending, err := l.store.Count(ctx, empID, entity.LeavePending)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Total: total, Pending: pending}, nil
}

func (l *Ledger) decide(ctx context.Context, id int64, next entity.LeaveStatus) (*entity.Leave, error) {
	if !entity.LeavePending.CanTransition(next) {
		return nil, errors.Errorf("unsupported leave status %q", next)
	}

	changed, err := l.store.Transition(ctx, id, entity.LeavePending, next)
	if err != nil {
		return nil, err
	}

	rec, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}
	if !changed {
		return nil, web.NewRequestError(ErrNotPending, http.StatusConflict)
	}

	return rec, nil
}

package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// CanTransition reports whether a leave in status s may move to next.
// Only pending -> approved and pending -> rejected exist.
func (s LeaveStatus) CanTransition(next LeaveStatus) bool {
	return s == LeavePending && next.Terminal()
}

type Leave struct {
	bun.BaseModel `bun:"table:leaves,alias:l"`

	ID        int64       `json:"id"         bun:"id,pk,autoincrement"`
	EmpID     string      `json:"emp_id"     bun:"emp_id"`
	FromDate  string      `json:"from_date"  bun:"from_date"`
	ToDate    string      `json:"to_date"    bun:"to_date"`
	Type      string      `json:"type"       bun:"type"`
	Reason    string      `json:"reason"     bun:"reason"`
	Status    LeaveStatus `json:"status"     bun:"status"`
	AppliedAt time.Time   `json:"applied_at" bun:"applied_at"`
}

// NamedLeave is a leave joined with the name of the employee who filed it.
type NamedLeave struct {
	Leave `bun:",extend"`

	Name string `json:"name" bun:"name"`
}

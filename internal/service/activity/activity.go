// Package activity builds the recent-activity feed shown on the admin
// dashboard.
package activity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hrportal/backend/internal/entity"
)

const (
	// RecentLeaves is how many of the latest leave requests feed in.
	RecentLeaves = 5
	// MaxItems bounds the merged feed.
	MaxItems = 8
)

const (
	KindLeave      = "leave"
	KindAttendance = "attendance"
)

type LeaveEvent struct {
	Name      string             `bun:"name"`
	Type      string             `bun:"type"`
	FromDate  string             `bun:"from_date"`
	ToDate    string             `bun:"to_date"`
	Status    entity.LeaveStatus `bun:"status"`
	AppliedAt time.Time          `bun:"applied_at"`
}

type CheckinEvent struct {
	Name    string    `bun:"name"`
	LoginAt time.Time `bun:"login_at"`
}

type Item struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`

	at time.Time
}

// At is the instant the item is ordered by.
func (i Item) At() time.Time { return i.at }

type LeaveSource interface {
	RecentLeaves(ctx context.Context, limit int) ([]LeaveEvent, error)
}

type CheckinSource interface {
	CheckinsOn(ctx context.Context, day string) ([]CheckinEvent, error)
}

// Build merges leaves and check-ins newest first and keeps at most MaxItems.
// Items with the same instant keep their input order, leaves before
// check-ins.
func Build(leaves []LeaveEvent, checkins []CheckinEvent, loc *time.Location) []Item {
	if loc == nil {
		loc = time.Local
	}

	items := make([]Item, 0, len(leaves)+len(checkins))
	for _, l := range leaves {
		label := string(l.Status)
		if l.Status == entity.LeavePending {
			label = "applied for"
		}

		items = append(items, Item{
			Kind:    KindLeave,
			Message: fmt.Sprintf("%s %s %s leave (%s – %s)", l.Name, label, l.Type, l.FromDate, l.ToDate),
			Time:    l.AppliedAt.In(loc).Format("2006-01-02 15:04"),
			at:      l.AppliedAt,
		})
	}
	for _, c := range checkins {
		items = append(items, Item{
			Kind:    KindAttendance,
			Message: fmt.Sprintf("%s marked attendance", c.Name),
			Time:    c.LoginAt.In(loc).Format("15:04"),
			at:      c.LoginAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return items
}

type Feed struct {
	leaves   LeaveSource
	checkins CheckinSource
	now      func() time.Time
}

func NewFeed(leaves LeaveSource, checkins CheckinSource, now func() time.Time) *Feed {
	if now == nil {
		now = time.Now
	}
	return &Feed{leaves: leaves, checkins: checkins, now: now}
}

// Recent returns the feed for the current day.
func (f *Feed) Recent(ctx context.Context) ([]Item, error) {
	now := f.now()

	leaves, err := f.leaves.RecentLeaves(ctx, RecentLeaves)
	if err != nil {
		return nil, err
	}

	checkins, err := f.checkins.CheckinsOn(ctx, now.Format(entity.DayLayout))
	if err != nil {
		return nil, err
	}

	return Build(leaves, checkins, now.Location()), nil
}

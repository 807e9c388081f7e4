package leave

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/service/activity"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) Create(ctx context.Context, l *entity.Leave) error {
	_, err := r.NewInsert().Model(l).Returning("id").Exec(ctx)

	return postgres.Classify(err, "creating leave")
}

// Get returns the leave with id, or nil if there is none.
func (r Repository) Get(ctx context.Context, id int64) (*entity.Leave, error) {
	var detail entity.Leave

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.Classify(err, "selecting leave")
	}

	return &detail, nil
}

// Transition is a single conditional update, so two admins deciding the
// same request cannot both succeed.
func (r Repository) Transition(ctx context.Context, id int64, from, next entity.LeaveStatus) (bool, error) {
	res, err := r.NewUpdate().Model((*entity.Leave)(nil)).
		Set("status = ?", next).
		Where("id = ?", id).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return false, postgres.Classify(err, "updating leave status")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, postgres.Classify(err, "updating leave status")
	}

	return n > 0, nil
}

func (r Repository) ListByEmployee(ctx context.Context, empID string) ([]entity.Leave, error) {
	list := make([]entity.Leave, 0)

	err := r.NewSelect().Model(&list).
		Where("emp_id = ?", empID).
		Order("applied_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, postgres.Classify(err, "selecting employee leaves")
	}

	return list, nil
}

func (r Repository) ListPending(ctx context.Context) ([]entity.NamedLeave, error) {
	list := make([]entity.NamedLeave, 0)

	err := r.NewSelect().Model(&list).
		ColumnExpr("l.*").
		ColumnExpr("e.name").
		Join("JOIN employees AS e ON e.emp_id = l.emp_id").
		Where("l.status = ?", entity.LeavePending).
		Order("l.applied_at DESC", "l.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, postgres.Classify(err, "selecting pending leaves")
	}

	return list, nil
}

// Count counts the employee's leaves, all of them when status is empty. An
// empty empID counts across employees.
func (r Repository) Count(ctx context.Context, empID string, status entity.LeaveStatus) (int, error) {
	q := r.NewSelect().Model((*entity.Leave)(nil))
	if empID != "" {
		q = q.Where("emp_id = ?", empID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	count, err := q.Count(ctx)
	if err != nil {
		return 0, postgres.Classify(err, "counting leaves")
	}

	return count, nil
}

// RecentLeaves returns the latest applied leaves of any status.
func (r Repository) RecentLeaves(ctx context.Context, limit int) ([]activity.LeaveEvent, error) {
	var list []activity.LeaveEvent

	err := r.NewSelect().
		TableExpr("leaves AS l").
		ColumnExpr("e.name, l.type, l.from_date, l.to_date, l.status, l.applied_at").
		Join("JOIN employees AS e ON e.emp_id = l.emp_id").
		OrderExpr("l.applied_at DESC, l.id DESC").
		Limit(limit).
		Scan(ctx, &list)
	if err != nil {
		return nil, postgres.Classify(err, "selecting recent leaves")
	}

	return list, nil
}

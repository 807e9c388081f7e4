package attendance

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/service/activity"
	attendance_service "hrportal/backend/internal/service/attendance"
)

type Repository struct {
	*postgresql.Database
	db bun.IDB
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database, db: database.DB}
}

// RunInTx runs fn against a copy of the repository bound to one transaction.
func (r Repository) RunInTx(ctx context.Context, fn func(ctx context.Context, store attendance_service.Store) error) error {
	err := r.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, Repository{Database: r.Database, db: tx})
	})

	return postgres.Classify(err, "attendance transaction")
}

// Day locks and returns the employee's row for day, or nil if there is none.
func (r Repository) Day(ctx context.Context, empID, day string) (*entity.Attendance, error) {
	var detail entity.Attendance

	q := r.db.NewSelect().Model(&detail).
		Where("emp_id = ?", empID).
		Where("work_day = ?", day)
	if _, ok := r.db.(bun.Tx); ok {
		q = q.For("UPDATE")
	}

	err := q.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.Classify(err, "selecting attendance")
	}

	return &detail, nil
}

func (r Repository) Create(ctx context.Context, rec *entity.Attendance) error {
	_, err := r.db.NewInsert().Model(rec).Returning("id").Exec(ctx)

	return postgres.Classify(err, "creating attendance")
}

func (r Repository) Update(ctx context.Context, rec *entity.Attendance) error {
	_, err := r.db.NewUpdate().Model(rec).
		Column("status", "login_at", "logout_at").
		WherePK().
		Exec(ctx)

	return postgres.Classify(err, "updating attendance")
}

// Range returns the employee's rows with from <= work_day < to.
func (r Repository) Range(ctx context.Context, empID, from, to string) ([]entity.Attendance, error) {
	var list []entity.Attendance

	err := r.db.NewSelect().Model(&list).
		Where("emp_id = ?", empID).
		Where("work_day >= ?", from).
		Where("work_day < ?", to).
		Order("work_day").
		Scan(ctx)
	if err != nil {
		return nil, postgres.Classify(err, "selecting attendance range")
	}

	return list, nil
}

// CheckinsOn lists the present check-ins of day with the employee names,
// latest first.
func (r Repository) CheckinsOn(ctx context.Context, day string) ([]activity.CheckinEvent, error) {
	var list []activity.CheckinEvent

	err := r.db.NewSelect().
		TableExpr("attendance AS a").
		ColumnExpr("e.name, a.login_at").
		Join("JOIN employees AS e ON e.emp_id = a.emp_id").
		Where("a.work_day = ?", day).
		Where("a.status = ?", entity.AttendancePresent).
		Where("a.login_at IS NOT NULL").
		OrderExpr("a.login_at DESC").
		Scan(ctx, &list)
	if err != nil {
		return nil, postgres.Classify(err, "selecting check-ins")
	}

	return list, nil
}

// CountPresent counts employees marked present on day.
func (r Repository) CountPresent(ctx context.Context, day string) (int, error) {
	count, err := r.db.NewSelect().Model((*entity.Attendance)(nil)).
		Where("work_day = ?", day).
		Where("status = ?", entity.AttendancePresent).
		Count(ctx)
	if err != nil {
		return 0, postgres.Classify(err, "counting present employees")
	}

	return count, nil
}

package commands

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/service/hashing"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Scheme is one migration step. A step runs either Query or Seed.
type Scheme struct {
	Index       int
	Description string
	Query       string
	Seed        func(ctx context.Context, tx bun.Tx, loc *time.Location) error
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            username text primary key,
            password text not null,
            role text not null check (role in ('ADMIN', 'EMPLOYEE'))
        );`,
	},
	{
		Index:       2,
		Description: "Create table: employees.",
		Query: `
        CREATE TABLE IF NOT EXISTS employees (
            id serial primary key,
            emp_id text not null unique,
            name text not null,
            email text not null,
            department text not null,
            salary text,
            join_date text check (join_date ~ '^\d{4}-\d{2}-\d{2}$'),
            username text unique,
            profile_image text,
            qualification text
        );`,
	},
	{
		Index:       3,
		Description: "Create table: leaves.",
		Query: `
        CREATE TABLE IF NOT EXISTS leaves (
            id serial primary key,
            emp_id text not null references employees(emp_id),
            from_date text not null check (from_date ~ '^\d{4}-\d{2}-\d{2}$'),
            to_date text not null check (to_date ~ '^\d{4}-\d{2}-\d{2}$'),
            type text not null,
            reason text not null default '',
            status text not null default 'pending' check (status in ('pending', 'approved', 'rejected')),
            applied_at timestamptz not null default now()
        );
        CREATE INDEX IF NOT EXISTS leaves_status_applied_at_idx ON leaves (status, applied_at DESC);`,
	},
	{
		Index:       4,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            emp_id text not null references employees(emp_id),
            work_day text not null check (work_day ~ '^\d{4}-\d{2}-\d{2}$'),
            status text not null default 'absent' check (status in ('present', 'absent')),
            login_at timestamptz,
            logout_at timestamptz,
            unique (emp_id, work_day)
        );`,
	},
	{
		Index:       5,
		Description: "Seed users, employees, leaves and attendance.",
		Seed:        seed,
	},
}

func seed(ctx context.Context, tx bun.Tx, loc *time.Location) error {
	logins := []struct {
		username, password string
		role               entity.Role
	}{
		{"admin", "admin123", entity.RoleAdmin},
		{"john", "pass123", entity.RoleEmployee},
		{"priya", "pass123", entity.RoleEmployee},
		{"rahul", "pass123", entity.RoleEmployee},
	}
	for _, l := range logins {
		hash, err := hashing.HashPassword(l.password)
		if err != nil {
			return err
		}
		user := entity.User{Username: l.username, Password: hash, Role: l.role}
		if _, err := tx.NewInsert().Model(&user).On("CONFLICT (username) DO NOTHING").Exec(ctx); err != nil {
			return errors.Wrapf(err, "seeding user %s", l.username)
		}
	}

	employee := func(empID, name, email, department, salary, joined, username, qualification string) entity.Employee {
		return entity.Employee{
			EmpID: empID, Name: name, Email: email, Department: department,
			Salary: salary, JoinDate: joined, Username: &username, Qualification: qualification,
		}
	}
	employees := []entity.Employee{
		employee("ADMIN001", "Hari Priya", "admin@company.com", "HR", "", "2020-01-01", "admin", ""),
		employee("EMP001", "John Doe", "john@company.com", "Development", "75000", "2023-01-10", "john", "B.Tech"),
		employee("EMP002", "Priya Sharma", "priya@company.com", "HR", "65000", "2022-03-15", "priya", "MBA"),
		employee("EMP003", "Rahul Kumar", "rahul@company.com", "Finance", "70000", "2023-06-01", "rahul", "B.Com"),
	}
	if _, err := tx.NewInsert().Model(&employees).On("CONFLICT (emp_id) DO NOTHING").Exec(ctx); err != nil {
		return errors.Wrap(err, "seeding employees")
	}

	now := time.Now()
	leaves := []entity.Leave{
		{EmpID: "EMP001", FromDate: "2026-01-28", ToDate: "2026-01-29", Type: "casual", Reason: "Family event", Status: entity.LeavePending, AppliedAt: now},
		{EmpID: "EMP002", FromDate: "2026-01-27", ToDate: "2026-01-27", Type: "sick", Reason: "Fever", Status: entity.LeavePending, AppliedAt: now},
		{EmpID: "EMP001", FromDate: "2026-02-10", ToDate: "2026-02-12", Type: "sick", Reason: "Flu", Status: entity.LeavePending, AppliedAt: now},
	}
	if _, err := tx.NewInsert().Model(&leaves).Exec(ctx); err != nil {
		return errors.Wrap(err, "seeding leaves")
	}

	johnIn := time.Date(2026, 2, 2, 9, 0, 0, 0, loc)
	priyaIn := time.Date(2026, 2, 2, 9, 15, 0, 0, loc)
	attendance := []entity.Attendance{
		{EmpID: "EMP001", WorkDay: "2026-02-02", Status: entity.AttendancePresent, LoginAt: &johnIn},
		{EmpID: "EMP002", WorkDay: "2026-02-02", Status: entity.AttendancePresent, LoginAt: &priyaIn},
	}
	if _, err := tx.NewInsert().Model(&attendance).On("CONFLICT (emp_id, work_day) DO NOTHING").Exec(ctx); err != nil {
		return errors.Wrap(err, "seeding attendance")
	}

	return nil
}

// MigrateUP applies the steps newer than the version recorded in
// schema_migrations. A step that failed before is retried first.
func MigrateUP(ctx context.Context, db *postgresql.Database, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text)`); err != nil {
		return errors.Wrap(err, "creating schema_migrations")
	}

	var (
		version int
		dirty   bool
		er      sql.NullString
	)
	err := db.QueryRowContext(ctx, "SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err = db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (0, false)`); err != nil {
			return errors.Wrap(err, "initialising schema_migrations")
		}
	} else if err != nil {
		return errors.Wrap(err, "reading schema_migrations")
	}

	if dirty {
		log.Printf("migrate: retrying version %d after error: %s", version, er.String)
		version--
	}

	for _, s := range scheme {
		if s.Index <= version {
			continue
		}

		log.Printf("migrate: %d %s", s.Index, s.Description)
		if err := apply(ctx, db, s, loc); err != nil {
			if _, uerr := db.ExecContext(ctx, `UPDATE schema_migrations SET version = ?, dirty = true, error = ?`, s.Index, err.Error()); uerr != nil {
				return errors.Wrap(uerr, "recording migrate error")
			}
			return errors.Wrapf(err, "migrate version %d", s.Index)
		}
	}

	return nil
}

func apply(ctx context.Context, db *postgresql.Database, s Scheme, loc *time.Location) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if s.Query != "" {
			if _, err := tx.ExecContext(ctx, s.Query); err != nil {
				return err
			}
		}
		if s.Seed != nil {
			if err := s.Seed(ctx, tx, loc); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx, `UPDATE schema_migrations SET version = ?, dirty = false, error = NULL`, s.Index)
		return err
	})
}

// Package identity maps the authenticated principal of a request to the
// employee it acts as.
package identity

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
)

const (
	AdminUsername = "admin"
	AdminEmpID    = "ADMIN001"
)

var ErrUnknownUser = errors.New("Invalid user")

// Store finds the emp_id of the employee whose username or emp_id equals
// login. It returns "", nil when there is none.
type Store interface {
	EmpIDByLogin(ctx context.Context, login string) (string, error)
}

type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the emp_id for username and whether one was found.
func (r *Resolver) Resolve(ctx context.Context, username string) (string, bool, error) {
	if username == "" {
		return "", false, nil
	}
	if username == AdminUsername {
		return AdminEmpID, true, nil
	}

	empID, err := r.store.EmpIDByLogin(ctx, username)
	if err != nil {
		return "", false, errors.Wrap(err, "resolving employee")
	}

	return empID, empID != "", nil
}

// EmpID resolves the principal carried by ctx. A request without claims or
// without a matching employee is unauthorized.
func (r *Resolver) EmpID(ctx context.Context) (string, error) {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return "", web.NewRequestError(err, http.StatusUnauthorized)
	}

	empID, ok, err := r.Resolve(ctx, claims.Username)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", web.NewRequestError(ErrUnknownUser, http.StatusUnauthorized)
	}

	return empID, nil
}

// Package postgres holds what the table repositories share: the storage
// error kinds and their mapping to HTTP statuses.
package postgres

import (
	"database/sql"
	"net/http"

	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrBusy         = errors.New("database is busy, retry the request")
)

// SQLSTATE codes the repositories react to.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
	codeQueryCanceled        = "57014"
)

// pgError is satisfied by pgdriver.Error.
type pgError interface {
	Field(k byte) string
}

// Code returns the SQLSTATE of err, or "" if err did not come from Postgres.
func Code(err error) string {
	var pgErr pgError
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	return ""
}

// Classify turns a storage error into a web error with the matching status.
// msg describes the failed operation.
func Classify(err error, msg string) error {
	if err == nil {
		return nil
	}

	var webErr *web.Error
	if errors.As(err, &webErr) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(errors.Wrap(ErrNotFound, msg), http.StatusNotFound)
	}

	switch Code(err) {
	case codeUniqueViolation:
		return web.NewRequestError(errors.Wrap(ErrDuplicateKey, msg), http.StatusConflict)
	case codeForeignKeyViolation:
		return web.NewRequestError(errors.Wrap(ErrNotFound, msg), http.StatusBadRequest)
	case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure, codeQueryCanceled:
		return web.NewRequestError(errors.Wrap(ErrBusy, msg), http.StatusServiceUnavailable)
	}

	return web.NewRequestError(errors.Wrap(err, msg), http.StatusInternalServerError)
}

// Package postgresql opens the bun database handle shared by the
// repositories and holds the helpers every repository embeds.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/entity"
)

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
	// LockTimeout bounds how long a statement waits for a row lock before
	// Postgres aborts it with lock_not_available.
	LockTimeout time.Duration
	Debug       bool
}

type Database struct {
	*bun.DB
}

func New(cfg Config) (*Database, error) {
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = 5 * time.Second
	}

	opts := []pgdriver.Option{
		pgdriver.WithAddr(net.JoinHostPort(cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithApplicationName("hrportal"),
		pgdriver.WithConnParams(map[string]interface{}{
			"lock_timeout": fmt.Sprintf("%dms", cfg.LockTimeout.Milliseconds()),
		}),
	}
	if cfg.DisableTLS {
		opts = append(opts, pgdriver.WithInsecure(true))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	return &Database{DB: db}, nil
}

// CheckClaims returns the request principal. When roles are given the
// principal must hold one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...entity.Role) (auth.Claims, error) {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.Claims{}, web.NewRequestError(err, http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of s are set.
func (d Database) ValidateStruct(s interface{}, fields ...string) error {
	return web.ValidateRequired(s, fields...)
}

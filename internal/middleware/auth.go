package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/entity"
)

var ErrForbidden = errors.New("attempted action is not allowed")

// Authenticate verifies the bearer token and stores its claims in c.Ctx.
// When roles are given the principal must hold one of them.
func Authenticate(a *auth.Auth, roles ...entity.Role) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			// Expecting: Bearer <token>
			parts := strings.Split(c.Request.Header.Get("authorization"), " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				err := errors.New("expected authorization header format: Bearer <token>")
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			claims, err := a.ValidateToken(c.Ctx, parts[1])
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			if len(roles) > 0 && !claims.Authorized(roles...) {
				return c.RespondError(web.NewRequestError(ErrForbidden, http.StatusForbidden))
			}

			c.Ctx = auth.WithClaims(c.Ctx, claims)

			return handler(c)
		}

		return h
	}

	return m
}

// MaxBodySize rejects request bodies larger than n bytes once they are read.
func MaxBodySize(n int64) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(c *web.Context) error {
			if c.Request.ContentLength > n {
				return c.RespondError(web.NewRequestError(errors.New("request body too large"), http.StatusRequestEntityTooLarge))
			}

			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
			return handler(c)
		}
	}
}

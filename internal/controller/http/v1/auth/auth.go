package auth

import (
	"net/http"

	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/repository/postgres/user"
)

type Controller struct {
	user   User
	tokens Tokens
}

func NewController(user User, tokens Tokens) *Controller {
	return &Controller{user: user, tokens: tokens}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	if err := c.BindFunc(&data, "Username", "Password"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.SignIn(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	accessToken, refreshToken, err := uc.tokens.GenerateTokens(detail.Username, detail.Role)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": user.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			Username:     detail.Username,
			Role:         detail.Role,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	if err := c.BindFunc(&data, "RefreshToken"); err != nil {
		return c.RespondError(err)
	}

	accessToken, refreshToken, err := uc.tokens.Refresh(c.Ctx, data.RefreshToken)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "refreshing token"), http.StatusUnauthorized))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": user.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

// SignOut revokes the access token the request was made with.
func (uc Controller) SignOut(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	if err := uc.tokens.Revoke(c.Ctx, claims); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusServiceUnavailable))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   "signed out",
		"error":  nil,
	}, http.StatusOK)
}

func (uc Controller) ResetPassword(c *web.Context) error {
	var data user.ResetPasswordRequest

	if err := c.BindFunc(&data, "Username", "Password"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.ResetPassword(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   "password reset",
		"error":  nil,
	}, http.StatusOK)
}

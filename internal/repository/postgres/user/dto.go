package user

import "hrportal/backend/internal/entity"

type SignInRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	Username     string      `json:"username,omitempty"`
	Role         entity.Role `json:"role,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password"     form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type ResetPasswordRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

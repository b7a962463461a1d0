package dto

import "time"

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email" example:"cadet@example.com"`
	Password    string `json:"password" validate:"required,min=8,max=72" example:"correct-horse"`
	DisplayName string `json:"display_name,omitempty" validate:"max=60" example:"Cadet"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"cadet@example.com"`
	Password string `json:"password" validate:"required" example:"correct-horse"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type RegisterResponse struct {
	UserID string `json:"user_id" example:"0192f5d2-6c1e-7b44-9a3e-1c2d3e4f5a6b"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64    `json:"expires_in" example:"86400"`
	User        UserInfo `json:"user"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserInfo struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Avatar      string     `json:"avatar,omitempty"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=60" example:"Ada"`
	Avatar      string `json:"avatar" validate:"omitempty,max=2000000" example:"data:image/png;base64,iVBOR..."`
}

func (u UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(u)
}

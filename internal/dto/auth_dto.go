package dto

import "time"

type RegisterRequest struct {
	UserId   string `json:"user_id" validate:"required,min=3,max=100"`
	Nickname string `json:"nickname" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	UserLang string `json:"user_lang" validate:"omitempty,oneof=ko en uz"`
}

type RegisterResponse struct {
	UserIdx   int64     `json:"user_idx"`
	UserId    string    `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	UserId   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type FindUserIdRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

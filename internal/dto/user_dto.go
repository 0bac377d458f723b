package dto

import "time"

type UserProfileResponse struct {
	UserIdx            int64     `json:"user_idx"`
	UserId             string    `json:"user_id"`
	Nickname           string    `json:"nickname"`
	Email              string    `json:"email"`
	UserLang           string    `json:"user_lang"`
	ProfileImageURL    *string   `json:"profile_image_url,omitempty"`
	BackgroundImageURL *string   `json:"background_image_url,omitempty"`
	IsDarkMode         bool      `json:"is_dark_mode"`
	CreatedAt          time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Nickname           *string `json:"nickname" validate:"omitempty,min=1,max=100"`
	Email              *string `json:"email" validate:"omitempty,email"`
	UserLang           *string `json:"user_lang" validate:"omitempty,oneof=ko en uz"`
	ProfileImageURL    *string `json:"profile_image_url" validate:"omitempty,max=500"`
	BackgroundImageURL *string `json:"background_image_url" validate:"omitempty,max=500"`
	IsDarkMode         *bool   `json:"is_dark_mode"`
}

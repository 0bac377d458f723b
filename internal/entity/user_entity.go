package entity

import "time"

type User struct {
	UserIdx            int64
	UserId             string
	Nickname           string
	Email              string
	PasswordHash       string
	UserLang           string
	ProfileImageURL    *string
	BackgroundImageURL *string
	IsDarkMode         bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

package model

import (
	"time"
)

type User struct {
	UserIdx            int64      `gorm:"primaryKey;autoIncrement"`
	UserId             string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Nickname           string     `gorm:"type:varchar(100);not null"`
	Email              string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash       string     `gorm:"type:text;not null"`
	UserLang           string     `gorm:"type:varchar(5);not null;default:ko"`
	ProfileImageURL    *string    `gorm:"type:varchar(500)"`
	BackgroundImageURL *string    `gorm:"type:varchar(500)"`
	IsDarkMode         bool       `gorm:"not null;default:false"`
	IsActive           bool       `gorm:"not null;default:true"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
	DeletedAt          *time.Time `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

package model

import "time"

type PasswordResetToken struct {
	Id        int64      `gorm:"primaryKey;autoIncrement"`
	UserIdx   int64      `gorm:"not null;index"`
	TokenHash string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_token"
}

package model

import "time"

type ChatSession struct {
	ChatSessionId int64     `gorm:"primaryKey;autoIncrement"`
	UserIdx       int64     `gorm:"not null;index"` // User ownership for data isolation
	ProjectId     *int64    `gorm:"index"`
	Project       *Project  `gorm:"foreignKey:ProjectId;references:ProjectId;constraint:OnDelete:SET NULL"`
	Title         *string   `gorm:"type:varchar(40)"`
	UserLang      string    `gorm:"type:varchar(5);not null;default:ko"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ChatSession) TableName() string {
	return "chat_session"
}

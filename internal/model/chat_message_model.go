package model

import "time"

type ChatMessage struct {
	MessageId     int64        `gorm:"primaryKey;autoIncrement"`
	ChatSessionId int64        `gorm:"not null;index"`
	ChatSession   *ChatSession `gorm:"foreignKey:ChatSessionId;references:ChatSessionId;constraint:OnDelete:CASCADE"`
	Role          string       `gorm:"type:varchar(20);not null"`
	FeatureType   string       `gorm:"type:varchar(30);not null"`
	Content       string       `gorm:"type:text;not null"`
	SourceLang    *string      `gorm:"type:varchar(5)"`
	TargetLang    *string      `gorm:"type:varchar(5)"`
	RequestId     *string      `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt     time.Time    `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}

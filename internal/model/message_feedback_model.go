package model

import "time"

type MessageFeedback struct {
	FeedbackId    int64        `gorm:"primaryKey;autoIncrement"`
	ChatSessionId int64        `gorm:"not null;index:idx_feedback_session;uniqueIndex:uq_feedback_session_message"`
	MessageId     int64        `gorm:"not null;index:idx_feedback_message;uniqueIndex:uq_feedback_session_message"`
	ChatMessage   *ChatMessage `gorm:"foreignKey:MessageId;references:MessageId;constraint:OnDelete:CASCADE"`
	Rating        int16        `gorm:"not null;check:rating IN (1,-1)"`
	CreatedAt     time.Time    `gorm:"not null"`
}

func (MessageFeedback) TableName() string {
	return "message_feedback"
}

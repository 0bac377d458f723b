package dto

import "time"

type FeedbackUpsertRequest struct {
	ChatSessionId int64  `json:"chat_session_id" validate:"required,gt=0"`
	MessageId     int64  `json:"message_id" validate:"required,gt=0"`
	Rating        string `json:"rating" validate:"required,oneof=like dislike"`
}

type FeedbackResponse struct {
	FeedbackId    int64     `json:"feedback_id"`
	ChatSessionId int64     `json:"chat_session_id"`
	MessageId     int64     `json:"message_id"`
	Rating        int16     `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

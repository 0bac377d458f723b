package contract

import (
	"context"

	"study-assistant-be/internal/entity"
)

type MessageFeedbackRepository interface {
	// Upsert inserts or overwrites the row keyed on (chat_session_id, message_id).
	Upsert(ctx context.Context, feedback *entity.MessageFeedback) error
	FindBySessionAndMessage(ctx context.Context, sessionId, messageId int64) (*entity.MessageFeedback, error)
	DeleteBySessionId(ctx context.Context, sessionId int64) error
}

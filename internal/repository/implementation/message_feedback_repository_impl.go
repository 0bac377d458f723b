package implementation

import (
	"context"
	"errors"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/mapper"
	"study-assistant-be/internal/model"
	"study-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageFeedbackRepository(db *gorm.DB) contract.MessageFeedbackRepository {
	return &MessageFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

// Upsert is an atomic conditional write so two concurrent ratings converge
// to the latest one instead of racing into a uniqueness error.
func (r *MessageFeedbackRepositoryImpl) Upsert(ctx context.Context, feedback *entity.MessageFeedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_session_id"}, {Name: "message_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "created_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	// Re-read so the caller sees the persisted row (feedback_id of the
	// original insert on the update path).
	var saved model.MessageFeedback
	err = r.db.WithContext(ctx).
		Where("chat_session_id = ? AND message_id = ?", m.ChatSessionId, m.MessageId).
		First(&saved).Error
	if err != nil {
		return err
	}
	*feedback = *r.mapper.FeedbackToEntity(&saved)
	return nil
}

func (r *MessageFeedbackRepositoryImpl) FindBySessionAndMessage(ctx context.Context, sessionId, messageId int64) (*entity.MessageFeedback, error) {
	var m model.MessageFeedback
	err := r.db.WithContext(ctx).
		Where("chat_session_id = ? AND message_id = ?", sessionId, messageId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.FeedbackToEntity(&m), nil
}

func (r *MessageFeedbackRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId int64) error {
	return r.db.WithContext(ctx).
		Where("chat_session_id = ?", sessionId).
		Delete(&model.MessageFeedback{}).Error
}

package mapper

import (
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		ChatSessionId: s.ChatSessionId,
		UserIdx:       s.UserIdx,
		ProjectId:     s.ProjectId,
		Title:         s.Title,
		UserLang:      s.UserLang,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		ChatSessionId: s.ChatSessionId,
		UserIdx:       s.UserIdx,
		ProjectId:     s.ProjectId,
		Title:         s.Title,
		UserLang:      s.UserLang,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		MessageId:     msg.MessageId,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		FeatureType:   msg.FeatureType,
		Content:       msg.Content,
		SourceLang:    msg.SourceLang,
		TargetLang:    msg.TargetLang,
		RequestId:     msg.RequestId,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		MessageId:     msg.MessageId,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		FeatureType:   msg.FeatureType,
		Content:       msg.Content,
		SourceLang:    msg.SourceLang,
		TargetLang:    msg.TargetLang,
		RequestId:     msg.RequestId,
		CreatedAt:     msg.CreatedAt,
	}
}

// Feedback Mappers

func (m *ChatMapper) FeedbackToEntity(fb *model.MessageFeedback) *entity.MessageFeedback {
	if fb == nil {
		return nil
	}

	return &entity.MessageFeedback{
		FeedbackId:    fb.FeedbackId,
		ChatSessionId: fb.ChatSessionId,
		MessageId:     fb.MessageId,
		Rating:        fb.Rating,
		CreatedAt:     fb.CreatedAt,
	}
}

func (m *ChatMapper) FeedbackToModel(fb *entity.MessageFeedback) *model.MessageFeedback {
	if fb == nil {
		return nil
	}

	return &model.MessageFeedback{
		FeedbackId:    fb.FeedbackId,
		ChatSessionId: fb.ChatSessionId,
		MessageId:     fb.MessageId,
		Rating:        fb.Rating,
		CreatedAt:     fb.CreatedAt,
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
)

type IChatMessageService interface {
	Append(ctx context.Context, userIdx int64, msg *AppendMessageInput) (*dto.ChatMessageResponse, error)
	List(ctx context.Context, userIdx, sessionId int64, limit, offset int) ([]*dto.ChatMessageResponse, error)
	DeleteOne(ctx context.Context, userIdx, messageId int64) error
}

// AppendMessageInput is the write shape for a single message row.
type AppendMessageInput struct {
	ChatSessionId int64
	Role          string
	FeatureType   string
	Content       string
	SourceLang    *string
	TargetLang    *string
	RequestId     *string
}

type chatMessageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatMessageService(uowFactory unitofwork.RepositoryFactory) IChatMessageService {
	return &chatMessageService{
		uowFactory: uowFactory,
	}
}

func messageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
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

// buildMessage validates the input and produces the entity to insert.
// Shared with the log coordinator so both paths enforce the same rules.
func buildMessage(input *AppendMessageInput) (*entity.ChatMessage, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperror.InvalidArgument("message content must not be empty")
	}
	if !constant.IsValidRole(input.Role) {
		return nil, apperror.InvalidArgument("unknown message role")
	}
	if !constant.IsValidFeatureType(input.FeatureType) {
		return nil, apperror.InvalidArgument("unknown feature type")
	}

	return &entity.ChatMessage{
		ChatSessionId: input.ChatSessionId,
		Role:          input.Role,
		FeatureType:   input.FeatureType,
		Content:       content,
		SourceLang:    input.SourceLang,
		TargetLang:    input.TargetLang,
		RequestId:     input.RequestId,
		CreatedAt:     time.Now(),
	}, nil
}

func (c *chatMessageService) Append(ctx context.Context, userIdx int64, input *AppendMessageInput) (*dto.ChatMessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: input.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if session.UserIdx != userIdx {
		return nil, apperror.Forbidden("chat session belongs to another user")
	}

	msg, err := buildMessage(input)
	if err != nil {
		return nil, err
	}

	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	return messageToResponse(msg), nil
}

// List returns a session's messages in total order.
func (c *chatMessageService) List(ctx context.Context, userIdx, sessionId int64, limit, offset int) ([]*dto.ChatMessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if session.UserIdx != userIdx {
		return nil, apperror.Forbidden("chat session belongs to another user")
	}

	specs := []specification.Specification{
		specification.BySessionID{ChatSessionId: sessionId},
		specification.MessageOrder{},
	}
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		specs = append(specs, specification.Paginate{Limit: limit, Offset: offset})
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, msg := range messages {
		result = append(result, messageToResponse(msg))
	}
	return result, nil
}

func (c *chatMessageService) DeleteOne(ctx context.Context, userIdx, messageId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatMessageRepository().FindOne(ctx, specification.ByMessageID{MessageId: messageId})
	if err != nil {
		return err
	}
	if msg == nil {
		return apperror.NotFound("message not found")
	}

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: msg.ChatSessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NotFound("chat session not found")
	}
	if session.UserIdx != userIdx {
		return apperror.Forbidden("message belongs to another user")
	}

	return uow.ChatMessageRepository().Delete(ctx, messageId)
}

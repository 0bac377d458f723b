package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/events"
)

// EventPublisher is the outbound bus for domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatLogService interface {
	LogExchange(ctx context.Context, input *LogExchangeInput) (int64, error)
}

// LogExchangeInput carries one user/assistant exchange to be recorded.
type LogExchangeInput struct {
	UserIdx          int64
	ChatSessionId    *int64
	FeatureType      string
	UserContent      string
	AssistantContent string
	CorrelationId    string
	SourceLang       *string
	TargetLang       *string
}

type chatLogService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger
}

func NewChatLogService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	logger logger.ILogger,
) IChatLogService {
	return &chatLogService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

// LogExchange records one user/assistant pair as a single atomic unit,
// creating the session first if none was supplied. Title generation is
// dispatched after the commit and never affects the result.
func (c *chatLogService) LogExchange(ctx context.Context, input *LogExchangeInput) (int64, error) {
	if !constant.IsValidFeatureType(input.FeatureType) {
		return 0, apperror.InvalidArgument("unknown feature type")
	}
	if strings.TrimSpace(input.UserContent) == "" || strings.TrimSpace(input.AssistantContent) == "" {
		return 0, apperror.InvalidArgument("exchange content must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	// The transaction opens before session resolution so an auto-created
	// session rolls back with the messages instead of outliving a failed
	// exchange as an empty orphan.
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	session, err := c.resolveSession(ctx, uow, input)
	if err != nil {
		return 0, err
	}

	userMsg, err := buildMessage(&AppendMessageInput{
		ChatSessionId: session.ChatSessionId,
		Role:          constant.ChatMessageRoleUser,
		FeatureType:   input.FeatureType,
		Content:       input.UserContent,
		SourceLang:    input.SourceLang,
		TargetLang:    input.TargetLang,
	})
	if err != nil {
		return 0, err
	}

	// Correlation id goes on the assistant turn only, so a retried request
	// reusing the same id cannot collide on the user row.
	var requestId *string
	if input.CorrelationId != "" {
		requestId = &input.CorrelationId
	}
	assistantMsg, err := buildMessage(&AppendMessageInput{
		ChatSessionId: session.ChatSessionId,
		Role:          constant.ChatMessageRoleAssistant,
		FeatureType:   input.FeatureType,
		Content:       input.AssistantContent,
		SourceLang:    input.SourceLang,
		TargetLang:    input.TargetLang,
		RequestId:     requestId,
	})
	if err != nil {
		return 0, err
	}

	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return 0, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return 0, err
	}

	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	c.dispatchAfterCommit(ctx, input, session)

	return session.ChatSessionId, nil
}

func (c *chatLogService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, input *LogExchangeInput) (*entity.ChatSession, error) {
	if input.ChatSessionId != nil {
		session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: *input.ChatSessionId})
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, apperror.NotFound("chat session not found")
		}
		if session.UserIdx != input.UserIdx {
			return nil, apperror.Forbidden("chat session belongs to another user")
		}
		return session, nil
	}

	lang := constant.DefaultLang
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserIdx{UserIdx: input.UserIdx})
	if err != nil {
		return nil, err
	}
	if user != nil && constant.IsValidLang(user.UserLang) {
		lang = user.UserLang
	}

	now := time.Now()
	session := entity.ChatSession{
		UserIdx:   input.UserIdx,
		UserLang:  lang,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// dispatchAfterCommit publishes the title-generation trigger and the domain
// event. Both are best-effort: the exchange is already durable.
func (c *chatLogService) dispatchAfterCommit(ctx context.Context, input *LogExchangeInput, session *entity.ChatSession) {
	payload, err := json.Marshal(dto.TitleGenerateMessage{ChatSessionId: session.ChatSessionId})
	if err != nil {
		c.logger.Warn("chat_log", "failed to encode title generation trigger", map[string]interface{}{
			"chat_session_id": session.ChatSessionId,
			"error":           err.Error(),
		})
	} else if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("chat_log", "failed to dispatch title generation", map[string]interface{}{
			"chat_session_id": session.ChatSessionId,
			"error":           err.Error(),
		})
	}

	if c.eventPublisher != nil {
		event := events.ExchangeLogged(input.UserIdx, session.ChatSessionId, input.FeatureType)
		if err := c.eventPublisher.Publish(ctx, event); err != nil {
			c.logger.Warn("chat_log", "failed to publish exchange event", map[string]interface{}{
				"chat_session_id": session.ChatSessionId,
				"error":           err.Error(),
			})
		}
	}
}

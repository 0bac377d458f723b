package service

import (
	"context"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	SendMessage(ctx context.Context, userIdx int64, sessionId *int64, req *dto.ChatRequest) (*dto.ChatData, error)
}

type chatService struct {
	provider       llm.LLMProvider
	uowFactory     unitofwork.RepositoryFactory
	chatLogService IChatLogService
}

func NewChatService(
	provider llm.LLMProvider,
	uowFactory unitofwork.RepositoryFactory,
	chatLogService IChatLogService,
) IChatService {
	return &chatService{
		provider:       provider,
		uowFactory:     uowFactory,
		chatLogService: chatLogService,
	}
}

const chatSystemPrompt = `You are a helpful study assistant.
Answer the student's questions clearly and concisely.
Use the SAME LANGUAGE as the student's message.`

// chatHistoryLimit bounds how many prior messages feed the model.
const chatHistoryLimit = 20

func (c *chatService) SendMessage(ctx context.Context, userIdx int64, sessionId *int64, req *dto.ChatRequest) (*dto.ChatData, error) {
	history := []llm.Message{
		{Role: "system", Content: chatSystemPrompt},
	}

	if sessionId != nil {
		prior, err := c.loadHistory(ctx, userIdx, *sessionId)
		if err != nil {
			return nil, err
		}
		history = append(history, prior...)
	}

	history = append(history, llm.Message{Role: "user", Content: req.Message})

	response, err := c.provider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		return nil, apperror.Upstream(err)
	}

	loggedSessionId, err := c.chatLogService.LogExchange(ctx, &LogExchangeInput{
		UserIdx:          userIdx,
		ChatSessionId:    sessionId,
		FeatureType:      constant.FeatureTypeChat,
		UserContent:      req.Message,
		AssistantContent: response,
		CorrelationId:    uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.ChatData{
		Response:      response,
		ChatSessionId: loggedSessionId,
	}, nil
}

func (c *chatService) loadHistory(ctx context.Context, userIdx, sessionId int64) ([]llm.Message, error) {
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

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{ChatSessionId: sessionId},
		specification.MessageOrder{},
	)
	if err != nil {
		return nil, err
	}
	if len(messages) > chatHistoryLimit {
		messages = messages[len(messages)-chatHistoryLimit:]
	}

	history := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return history, nil
}

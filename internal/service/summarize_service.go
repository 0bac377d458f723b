package service

import (
	"context"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type ISummarizeService interface {
	Summarize(ctx context.Context, userIdx int64, sessionId *int64, req *dto.SummarizeRequest) (*dto.SummarizeData, error)
}

type summarizeService struct {
	provider       llm.LLMProvider
	chatLogService IChatLogService
}

func NewSummarizeService(provider llm.LLMProvider, chatLogService IChatLogService) ISummarizeService {
	return &summarizeService{
		provider:       provider,
		chatLogService: chatLogService,
	}
}

const summarizeSystemPrompt = `You are a study assistant.
Summarize the user's text in 2-3 clear sentences.
Use the SAME LANGUAGE as the input text.
Output ONLY the summary.`

func (c *summarizeService) Summarize(ctx context.Context, userIdx int64, sessionId *int64, req *dto.SummarizeRequest) (*dto.SummarizeData, error) {
	summary, err := llm.Complete(ctx, c.provider, summarizeSystemPrompt, req.Text, llm.WithTemperature(0.3))
	if err != nil {
		return nil, apperror.Upstream(err)
	}

	loggedSessionId, err := c.chatLogService.LogExchange(ctx, &LogExchangeInput{
		UserIdx:          userIdx,
		ChatSessionId:    sessionId,
		FeatureType:      constant.FeatureTypeSummarize,
		UserContent:      req.Text,
		AssistantContent: summary,
		CorrelationId:    uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.SummarizeData{
		SummarizedText: summary,
		ChatSessionId:  loggedSessionId,
	}, nil
}

package service

import (
	"context"
	"fmt"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type ITranslateService interface {
	Translate(ctx context.Context, userIdx int64, sessionId *int64, req *dto.TranslateRequest) (*dto.TranslateData, error)
}

type translateService struct {
	provider       llm.LLMProvider
	chatLogService IChatLogService
}

func NewTranslateService(provider llm.LLMProvider, chatLogService IChatLogService) ITranslateService {
	return &translateService{
		provider:       provider,
		chatLogService: chatLogService,
	}
}

const translateSystemPrompt = `You are a professional translator.
Translate the user's text accurately and naturally.
Output ONLY the translation - no explanations or notes.`

func (c *translateService) Translate(ctx context.Context, userIdx int64, sessionId *int64, req *dto.TranslateRequest) (*dto.TranslateData, error) {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "auto"
	}

	prompt := fmt.Sprintf("Translate the following text from %s to %s:\n\n%s", sourceLang, req.TargetLang, req.Text)
	translated, err := llm.Complete(ctx, c.provider, translateSystemPrompt, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, apperror.Upstream(err)
	}

	var srcLang *string
	if req.SourceLang != "" {
		srcLang = &req.SourceLang
	}
	loggedSessionId, err := c.chatLogService.LogExchange(ctx, &LogExchangeInput{
		UserIdx:          userIdx,
		ChatSessionId:    sessionId,
		FeatureType:      constant.FeatureTypeTranslate,
		UserContent:      req.Text,
		AssistantContent: translated,
		CorrelationId:    uuid.New().String(),
		SourceLang:       srcLang,
		TargetLang:       &req.TargetLang,
	})
	if err != nil {
		return nil, err
	}

	return &dto.TranslateData{
		TranslatedText: translated,
		ChatSessionId:  loggedSessionId,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/pkg/llm"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type ITermService interface {
	Explain(ctx context.Context, userIdx int64, sessionId *int64, req *dto.TermExplainRequest) (*dto.TermExplainData, error)
}

type termService struct {
	provider       llm.LLMProvider
	chatLogService IChatLogService
	cache          *gocache.Cache
}

func NewTermService(provider llm.LLMProvider, chatLogService IChatLogService) ITermService {
	return &termService{
		provider:       provider,
		chatLogService: chatLogService,
		cache:          gocache.New(1*time.Hour, 10*time.Minute),
	}
}

const termSystemPrompt = `You are a study assistant that explains terminology.
Explain the given term simply, in 2-4 sentences, for a student.
Answer in the requested language.
Output ONLY the explanation.`

func termCacheKey(term, lang string) string {
	return strings.ToLower(strings.TrimSpace(term)) + "|" + lang
}

func (c *termService) Explain(ctx context.Context, userIdx int64, sessionId *int64, req *dto.TermExplainRequest) (*dto.TermExplainData, error) {
	// Context-specific questions bypass the cache: the same term can mean
	// different things in different passages.
	cacheable := strings.TrimSpace(req.Context) == ""
	key := termCacheKey(req.Term, req.TargetLang)

	var explanation string
	var cached bool
	if cacheable {
		if v, ok := c.cache.Get(key); ok {
			explanation = v.(string)
			cached = true
		}
	}

	if !cached {
		prompt := fmt.Sprintf("Explain the term %q in %s.", req.Term, req.TargetLang)
		if req.Context != "" {
			prompt += fmt.Sprintf("\n\nThe term appears in this context:\n%s", req.Context)
		}

		var err error
		explanation, err = llm.Complete(ctx, c.provider, termSystemPrompt, prompt, llm.WithTemperature(0.3))
		if err != nil {
			return nil, apperror.Upstream(err)
		}
		if cacheable {
			c.cache.SetDefault(key, explanation)
		}
	}

	loggedSessionId, err := c.chatLogService.LogExchange(ctx, &LogExchangeInput{
		UserIdx:          userIdx,
		ChatSessionId:    sessionId,
		FeatureType:      constant.FeatureTypeTerm,
		UserContent:      req.Term,
		AssistantContent: explanation,
		CorrelationId:    uuid.New().String(),
		TargetLang:       &req.TargetLang,
	})
	if err != nil {
		return nil, err
	}

	return &dto.TermExplainData{
		Term:          req.Term,
		Explanation:   explanation,
		TargetLang:    req.TargetLang,
		Cached:        cached,
		ChatSessionId: loggedSessionId,
	}, nil
}

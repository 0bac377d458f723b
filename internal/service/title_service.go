package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/llm"
)

// TitleOutcome reports what MaybeSetTitle did with a session.
type TitleOutcome string

const (
	TitleSet            TitleOutcome = "set"
	TitleSkippedTitled  TitleOutcome = "skipped_titled"
	TitleSkippedEmpty   TitleOutcome = "skipped_empty"
	TitleFailedUpstream TitleOutcome = "failed_upstream"
)

type ITitleService interface {
	MaybeSetTitle(ctx context.Context, sessionId int64) (TitleOutcome, error)
}

type titleService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	timeout    time.Duration
	logger     logger.ILogger
}

func NewTitleService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	timeout time.Duration,
	logger logger.ILogger,
) ITitleService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &titleService{
		uowFactory: uowFactory,
		provider:   provider,
		timeout:    timeout,
		logger:     logger,
	}
}

// MaybeSetTitle generates a title for an untitled session from its earliest
// messages. Provider failures are reported in the outcome, never as an error:
// titles are cosmetic.
func (c *titleService) MaybeSetTitle(ctx context.Context, sessionId int64) (TitleOutcome, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{ChatSessionId: sessionId})
	if err != nil {
		return TitleSkippedEmpty, err
	}
	if session == nil {
		return TitleSkippedEmpty, nil
	}
	if session.HasTitle() {
		return TitleSkippedTitled, nil
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{ChatSessionId: sessionId},
		specification.MessageOrder{},
		specification.Paginate{Limit: constant.TitlePromptMessageCount, Offset: 0},
	)
	if err != nil {
		return TitleSkippedEmpty, err
	}
	if len(messages) == 0 {
		return TitleSkippedEmpty, nil
	}

	prompt := buildTitlePrompt(messages)

	genCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := llm.Complete(genCtx, c.provider, constant.TitleSystemPrompt, prompt,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(64),
	)
	if err != nil {
		c.logger.Warn("title", "title generation failed", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
		return TitleFailedUpstream, nil
	}

	title := sanitizeTitle(raw)
	if title == "" {
		return TitleSkippedEmpty, nil
	}

	session.Title = &title
	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return TitleSkippedEmpty, err
	}

	c.logger.Info("title", "session title set", map[string]interface{}{
		"chat_session_id": sessionId,
		"title":           title,
	})
	return TitleSet, nil
}

// buildTitlePrompt renders the earliest messages as role-labelled lines,
// clipping each to keep the prompt bounded.
func buildTitlePrompt(messages []*entity.ChatMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		content := msg.Content
		if runes := []rune(content); len(runes) > constant.TitlePromptContentLimit {
			content = string(runes[:constant.TitlePromptContentLimit])
		}
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, content)
	}
	b.WriteString("\nGenerate a title for this conversation.")
	return b.String()
}

// sanitizeTitle flattens the model output to a single trimmed line and
// truncates it to the display limit.
func sanitizeTitle(raw string) string {
	title := strings.ReplaceAll(raw, "\n", " ")
	title = strings.Trim(title, "\"' ")
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	runes := []rune(title)
	if len(runes) > constant.TitleMaxChars {
		title = strings.TrimSpace(string(runes[:constant.TitleMaxChars]))
	}
	return title
}

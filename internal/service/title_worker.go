package service

import (
	"context"
	"encoding/json"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type ITitleWorker interface {
	Consume(ctx context.Context) error
}

// titleWorker consumes title-generation triggers published after each
// logged exchange and runs the generator off the request path.
type titleWorker struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	titleService ITitleService
	logger       logger.ILogger
}

func NewTitleWorker(
	pubSub *gochannel.GoChannel,
	topicName string,
	titleService ITitleService,
	logger logger.ILogger,
) ITitleWorker {
	return &titleWorker{
		pubSub:       pubSub,
		topicName:    topicName,
		titleService: titleService,
		logger:       logger,
	}
}

func (w *titleWorker) Consume(ctx context.Context) error {
	messages, err := w.pubSub.Subscribe(ctx, w.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			w.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (w *titleWorker) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TitleGenerateMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		w.logger.Error("title_worker", "invalid payload", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages so they are not retried forever.
		msg.Ack()
		return
	}

	outcome, err := w.titleService.MaybeSetTitle(ctx, payload.ChatSessionId)
	if err != nil {
		w.logger.Warn("title_worker", "title generation errored", map[string]interface{}{
			"chat_session_id": payload.ChatSessionId,
			"error":           err.Error(),
		})
		msg.Ack()
		return
	}

	w.logger.Debug("title_worker", "title generation finished", map[string]interface{}{
		"chat_session_id": payload.ChatSessionId,
		"outcome":         string(outcome),
	})
	msg.Ack()
}

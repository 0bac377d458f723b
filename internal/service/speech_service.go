package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/pkg/speech"

	"github.com/google/uuid"
)

// Upload bounds for audio transcription.
const (
	SpeechMaxFileSize = 5 * 1024 * 1024
)

var speechAllowedExtensions = map[string]bool{
	".mp3": true,
	".m4a": true,
	".wav": true,
}

type ISpeechService interface {
	Transcribe(ctx context.Context, userIdx int64, sessionId *int64, filename string, audio []byte, lang string) (*dto.SpeechData, error)
}

type speechService struct {
	transcriber    speech.Transcriber
	chatLogService IChatLogService
}

func NewSpeechService(transcriber speech.Transcriber, chatLogService IChatLogService) ISpeechService {
	return &speechService{
		transcriber:    transcriber,
		chatLogService: chatLogService,
	}
}

func (c *speechService) Transcribe(ctx context.Context, userIdx int64, sessionId *int64, filename string, audio []byte, lang string) (*dto.SpeechData, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !speechAllowedExtensions[ext] {
		return nil, apperror.InvalidArgument("unsupported audio format: use mp3, m4a or wav")
	}
	if len(audio) == 0 {
		return nil, apperror.InvalidArgument("audio file is empty")
	}
	if len(audio) > SpeechMaxFileSize {
		return nil, apperror.InvalidArgument("audio file exceeds the 5MB limit")
	}

	transcript, err := c.transcriber.Transcribe(ctx, filename, audio, lang)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, apperror.Upstream(fmt.Errorf("empty transcript for %s", filename))
	}

	var srcLang *string
	if lang != "" {
		srcLang = &lang
	}
	loggedSessionId, err := c.chatLogService.LogExchange(ctx, &LogExchangeInput{
		UserIdx:          userIdx,
		ChatSessionId:    sessionId,
		FeatureType:      constant.FeatureTypeSpeech,
		UserContent:      fmt.Sprintf("[voice] %s", filename),
		AssistantContent: transcript,
		CorrelationId:    uuid.New().String(),
		SourceLang:       srcLang,
	})
	if err != nil {
		return nil, err
	}

	return &dto.SpeechData{
		Transcript:    transcript,
		ChatSessionId: loggedSessionId,
	}, nil
}

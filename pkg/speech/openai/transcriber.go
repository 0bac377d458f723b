package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"study-assistant-be/pkg/speech"
)

const defaultBaseURL = "https://api.openai.com/v1"

type WhisperTranscriber struct {
	APIKey    string
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ speech.Transcriber = &WhisperTranscriber{}

func NewWhisperTranscriber(apiKey, modelName string) *WhisperTranscriber {
	if modelName == "" {
		modelName = "whisper-1"
	}
	return &WhisperTranscriber{
		APIKey:    apiKey,
		BaseURL:   defaultBaseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, filename string, audio []byte, lang string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := writer.WriteField("model", t.ModelName); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if lang != "" {
		if err := writer.WriteField("language", lang); err != nil {
			return "", fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	url := t.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.APIKey)

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var transcription transcriptionResponse
	if err := json.Unmarshal(bodyBytes, &transcription); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return strings.TrimSpace(transcription.Text), nil
}

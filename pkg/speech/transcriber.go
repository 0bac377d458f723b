package speech

import "context"

// Transcriber turns an uploaded audio payload into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte, lang string) (string, error)
}

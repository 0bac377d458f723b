package entity

import "time"

type ChatMessage struct {
	MessageId     int64
	ChatSessionId int64
	Role          string
	FeatureType   string
	Content       string
	SourceLang    *string
	TargetLang    *string
	RequestId     *string
	CreatedAt     time.Time
}

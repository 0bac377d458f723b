package entity

import "time"

// Rating values stored for message feedback.
const (
	RatingLike    int16 = 1
	RatingDislike int16 = -1
)

type MessageFeedback struct {
	FeedbackId    int64
	ChatSessionId int64
	MessageId     int64
	Rating        int16
	CreatedAt     time.Time
}

package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_REGISTERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields for concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// UserRegistered is published after a successful registration commit.
func UserRegistered(userIdx int64, email string) Event {
	return BaseEvent{
		Type: "USER_REGISTERED",
		Data: map[string]interface{}{
			"user_idx": userIdx,
			"email":    email,
		},
		OccurredAt: time.Now(),
	}
}

// ExchangeLogged is published after LogExchange commits both messages.
func ExchangeLogged(userIdx, chatSessionId int64, featureType string) Event {
	return BaseEvent{
		Type: "CHAT_EXCHANGE_LOGGED",
		Data: map[string]interface{}{
			"user_idx":        userIdx,
			"chat_session_id": chatSessionId,
			"feature_type":    featureType,
		},
		OccurredAt: time.Now(),
	}
}

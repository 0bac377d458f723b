package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(f *fakeRepositoryFactory, lang string) *entity.User {
	user := &entity.User{
		UserId:    "student1",
		Nickname:  "Student",
		Email:     "student@example.com",
		UserLang:  lang,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	_ = f.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), user)
	return user
}

func seedSession(f *fakeRepositoryFactory, userIdx int64, title *string) *entity.ChatSession {
	session := &entity.ChatSession{
		UserIdx:   userIdx,
		Title:     title,
		UserLang:  constant.LangEnglish,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_ = f.NewUnitOfWork(context.Background()).ChatSessionRepository().Create(context.Background(), session)
	return session
}

func newLogService(f *fakeRepositoryFactory) (IChatLogService, *fakePublisher, *fakeEventPublisher) {
	pub := &fakePublisher{}
	events := &fakeEventPublisher{}
	return NewChatLogService(f, pub, events, nopLogger{}), pub, events
}

func TestLogExchangeCreatesSessionWithUserLang(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangKorean)
	svc, _, _ := newLogService(factory)

	sessionId, err := svc.LogExchange(context.Background(), &LogExchangeInput{
		UserIdx:          user.UserIdx,
		FeatureType:      constant.FeatureTypeTranslate,
		UserContent:      "hello",
		AssistantContent: "annyeong",
		CorrelationId:    "req-1",
	})
	require.NoError(t, err)
	require.NotZero(t, sessionId)

	session := factory.store.sessions[sessionId]
	require.NotNil(t, session)
	assert.Equal(t, constant.LangKorean, session.UserLang)
	assert.Nil(t, session.Title)
	assert.Len(t, factory.store.messages, 2)
}

func TestLogExchangeCorrelationOnAssistantOnly(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	svc, _, _ := newLogService(factory)

	_, err := svc.LogExchange(context.Background(), &LogExchangeInput{
		UserIdx:          user.UserIdx,
		ChatSessionId:    &session.ChatSessionId,
		FeatureType:      constant.FeatureTypeChat,
		UserContent:      "question",
		AssistantContent: "answer",
		CorrelationId:    "req-42",
	})
	require.NoError(t, err)

	var userMsg, assistantMsg *entity.ChatMessage
	for _, m := range factory.store.messages {
		switch m.Role {
		case constant.ChatMessageRoleUser:
			userMsg = m
		case constant.ChatMessageRoleAssistant:
			assistantMsg = m
		}
	}
	require.NotNil(t, userMsg)
	require.NotNil(t, assistantMsg)

	assert.Nil(t, userMsg.RequestId)
	require.NotNil(t, assistantMsg.RequestId)
	assert.Equal(t, "req-42", *assistantMsg.RequestId)
	// Insert order puts the user turn first in the total order.
	assert.Less(t, userMsg.MessageId, assistantMsg.MessageId)
}

func TestLogExchangeAtomicRollback(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	svc, pub, _ := newLogService(factory)

	// First message insert succeeds, second fails.
	factory.store.failMessageCreateAt = 2

	_, err := svc.LogExchange(context.Background(), &LogExchangeInput{
		UserIdx:          user.UserIdx,
		ChatSessionId:    &session.ChatSessionId,
		FeatureType:      constant.FeatureTypeChat,
		UserContent:      "question",
		AssistantContent: "answer",
		CorrelationId:    "req-9",
	})
	require.Error(t, err)

	assert.Empty(t, factory.store.messages, "no partial write may survive a failed exchange")
	assert.Empty(t, pub.payloads, "nothing is dispatched for a rolled-back exchange")
}

func TestLogExchangeRollbackDiscardsAutoCreatedSession(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	svc, pub, _ := newLogService(factory)

	factory.store.failMessageCreateAt = 2

	_, err := svc.LogExchange(context.Background(), &LogExchangeInput{
		UserIdx:          user.UserIdx,
		FeatureType:      constant.FeatureTypeChat,
		UserContent:      "question",
		AssistantContent: "answer",
		CorrelationId:    "req-10",
	})
	require.Error(t, err)

	// The session created for the null-session exchange rolls back with it;
	// no empty orphan may appear in the user's listing.
	assert.Empty(t, factory.store.sessions)
	assert.Empty(t, factory.store.messages)
	assert.Empty(t, pub.payloads)
}

func TestLogExchangeOwnership(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, owner.UserIdx, nil)
	svc, _, _ := newLogService(factory)

	input := &LogExchangeInput{
		ChatSessionId:    &session.ChatSessionId,
		FeatureType:      constant.FeatureTypeChat,
		UserContent:      "q",
		AssistantContent: "a",
	}

	input.UserIdx = owner.UserIdx + 99
	_, err := svc.LogExchange(context.Background(), input)
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))

	missing := session.ChatSessionId + 100
	input.UserIdx = owner.UserIdx
	input.ChatSessionId = &missing
	_, err = svc.LogExchange(context.Background(), input)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestLogExchangeValidation(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	svc, _, _ := newLogService(factory)

	tests := []struct {
		name  string
		input *LogExchangeInput
	}{
		{
			name: "unknown feature type",
			input: &LogExchangeInput{
				UserIdx: user.UserIdx, FeatureType: "bogus",
				UserContent: "q", AssistantContent: "a",
			},
		},
		{
			name: "blank user content",
			input: &LogExchangeInput{
				UserIdx: user.UserIdx, FeatureType: constant.FeatureTypeChat,
				UserContent: "   ", AssistantContent: "a",
			},
		},
		{
			name: "blank assistant content",
			input: &LogExchangeInput{
				UserIdx: user.UserIdx, FeatureType: constant.FeatureTypeChat,
				UserContent: "q", AssistantContent: "",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.LogExchange(context.Background(), tt.input)
			assert.True(t, apperror.Is(err, apperror.CodeInvalidArgument))
			assert.Empty(t, factory.store.messages)
		})
	}
}

func TestLogExchangeDispatchesTitleGeneration(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	svc, pub, eventPub := newLogService(factory)

	sessionId, err := svc.LogExchange(context.Background(), &LogExchangeInput{
		UserIdx:          user.UserIdx,
		FeatureType:      constant.FeatureTypeSummarize,
		UserContent:      "long text",
		AssistantContent: "short text",
		CorrelationId:    "req-7",
	})
	require.NoError(t, err)

	require.Len(t, pub.payloads, 1)
	var payload dto.TitleGenerateMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &payload))
	assert.Equal(t, sessionId, payload.ChatSessionId)

	require.Len(t, eventPub.published, 1)
	assert.Equal(t, "CHAT_EXCHANGE_LOGGED", eventPub.published[0].EventType())
}

func TestLogExchangeSingleSessionPerCall(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	svc, _, _ := newLogService(factory)

	first, err := svc.LogExchange(context.Background(), &LogExchangeInput{
		UserIdx:     user.UserIdx,
		FeatureType: constant.FeatureTypeChat,
		UserContent: "q1", AssistantContent: "a1",
	})
	require.NoError(t, err)

	second, err := svc.LogExchange(context.Background(), &LogExchangeInput{
		UserIdx:       user.UserIdx,
		ChatSessionId: &first,
		FeatureType:   constant.FeatureTypeChat,
		UserContent:   "q2", AssistantContent: "a2",
	})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, factory.store.sessions, 1)
	assert.Len(t, factory.store.messages, 4)
}

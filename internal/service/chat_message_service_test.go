package service

import (
	"context"
	"testing"
	"time"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendValidation(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	svc := NewChatMessageService(factory)

	tests := []struct {
		name     string
		input    *AppendMessageInput
		wantCode apperror.Code
	}{
		{
			name: "blank content",
			input: &AppendMessageInput{
				ChatSessionId: session.ChatSessionId,
				Role:          constant.ChatMessageRoleUser,
				FeatureType:   constant.FeatureTypeChat,
				Content:       "   ",
			},
			wantCode: apperror.CodeInvalidArgument,
		},
		{
			name: "bad role",
			input: &AppendMessageInput{
				ChatSessionId: session.ChatSessionId,
				Role:          "narrator",
				FeatureType:   constant.FeatureTypeChat,
				Content:       "hi",
			},
			wantCode: apperror.CodeInvalidArgument,
		},
		{
			name: "bad feature type",
			input: &AppendMessageInput{
				ChatSessionId: session.ChatSessionId,
				Role:          constant.ChatMessageRoleUser,
				FeatureType:   "bogus",
				Content:       "hi",
			},
			wantCode: apperror.CodeInvalidArgument,
		},
		{
			name: "missing session",
			input: &AppendMessageInput{
				ChatSessionId: session.ChatSessionId + 50,
				Role:          constant.ChatMessageRoleUser,
				FeatureType:   constant.FeatureTypeChat,
				Content:       "hi",
			},
			wantCode: apperror.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Append(context.Background(), user.UserIdx, tt.input)
			assert.True(t, apperror.Is(err, tt.wantCode))
		})
	}
}

func TestAppendTrimsContent(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	svc := NewChatMessageService(factory)

	res, err := svc.Append(context.Background(), user.UserIdx, &AppendMessageInput{
		ChatSessionId: session.ChatSessionId,
		Role:          constant.ChatMessageRoleUser,
		FeatureType:   constant.FeatureTypeChat,
		Content:       "  hello  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Content)
}

func TestListOrdersByTimestampThenId(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	svc := NewChatMessageService(factory)

	// Identical timestamps: the id tie-break must keep insert order.
	ts := time.Now()
	repo := factory.NewUnitOfWork(context.Background()).ChatMessageRepository()
	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Create(context.Background(), &entity.ChatMessage{
			ChatSessionId: session.ChatSessionId,
			Role:          constant.ChatMessageRoleUser,
			FeatureType:   constant.FeatureTypeChat,
			Content:       content,
			CreatedAt:     ts,
		}))
	}

	messages, err := svc.List(context.Background(), user.UserIdx, session.ChatSessionId, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "two", messages[1].Content)
	assert.Equal(t, "three", messages[2].Content)
}

func TestDeleteOneOwnership(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, constant.LangEnglish)
	intruder := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, owner.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "q", "a")
	svc := NewChatMessageService(factory)

	var targetId int64
	for id := range factory.store.messages {
		targetId = id
		break
	}

	err := svc.DeleteOne(context.Background(), intruder.UserIdx, targetId)
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))
	assert.Len(t, factory.store.messages, 2)

	err = svc.DeleteOne(context.Background(), owner.UserIdx, targetId+999)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	require.NoError(t, svc.DeleteOne(context.Background(), owner.UserIdx, targetId))
	assert.Len(t, factory.store.messages, 1, "exactly the targeted row is removed")
	assert.Contains(t, factory.store.sessions, session.ChatSessionId, "session survives message deletion")
}

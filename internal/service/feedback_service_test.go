package service

import (
	"context"
	"testing"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingValue(t *testing.T) {
	got, err := ratingValue("like")
	require.NoError(t, err)
	assert.Equal(t, entity.RatingLike, got)

	got, err = ratingValue("dislike")
	require.NoError(t, err)
	assert.Equal(t, entity.RatingDislike, got)

	_, err = ratingValue("meh")
	assert.True(t, apperror.Is(err, apperror.CodeInvalidArgument))
}

func TestFeedbackUpsertConverges(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "q", "a")
	svc := NewFeedbackService(factory)

	var messageId int64
	for id := range factory.store.messages {
		messageId = id
		break
	}

	req := &dto.FeedbackUpsertRequest{
		ChatSessionId: session.ChatSessionId,
		MessageId:     messageId,
		Rating:        "like",
	}
	first, err := svc.Upsert(context.Background(), user.UserIdx, req)
	require.NoError(t, err)
	assert.Equal(t, entity.RatingLike, first.Rating)

	req.Rating = "dislike"
	second, err := svc.Upsert(context.Background(), user.UserIdx, req)
	require.NoError(t, err)

	assert.Equal(t, first.FeedbackId, second.FeedbackId, "re-rating overwrites, never duplicates")
	assert.Equal(t, entity.RatingDislike, second.Rating)
	assert.Len(t, factory.store.feedback, 1)
}

func TestFeedbackUpsertGuards(t *testing.T) {
	factory := newFakeFactory()
	owner := seedUser(factory, constant.LangEnglish)
	intruder := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, owner.UserIdx, nil)
	otherSession := seedSession(factory, owner.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "q", "a")
	svc := NewFeedbackService(factory)

	var messageId int64
	for id := range factory.store.messages {
		messageId = id
		break
	}

	_, err := svc.Upsert(context.Background(), intruder.UserIdx, &dto.FeedbackUpsertRequest{
		ChatSessionId: session.ChatSessionId, MessageId: messageId, Rating: "like",
	})
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))

	// The message must belong to the named session.
	_, err = svc.Upsert(context.Background(), owner.UserIdx, &dto.FeedbackUpsertRequest{
		ChatSessionId: otherSession.ChatSessionId, MessageId: messageId, Rating: "like",
	})
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	_, err = svc.Upsert(context.Background(), owner.UserIdx, &dto.FeedbackUpsertRequest{
		ChatSessionId: session.ChatSessionId + 77, MessageId: messageId, Rating: "like",
	})
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestFeedbackGet(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "q", "a")
	svc := NewFeedbackService(factory)

	var messageId int64
	for id := range factory.store.messages {
		messageId = id
		break
	}

	got, err := svc.Get(context.Background(), user.UserIdx, session.ChatSessionId, messageId)
	require.NoError(t, err)
	assert.Nil(t, got, "no feedback yet")

	_, err = svc.Upsert(context.Background(), user.UserIdx, &dto.FeedbackUpsertRequest{
		ChatSessionId: session.ChatSessionId, MessageId: messageId, Rating: "like",
	})
	require.NoError(t, err)

	got, err = svc.Get(context.Background(), user.UserIdx, session.ChatSessionId, messageId)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.RatingLike, got.Rating)
}

package service

import (
	"context"
	"errors"
	"testing"

	"study-assistant-be/internal/apperror"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateLogsExchange(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	logSvc, _, _ := newLogService(factory)
	provider := &fakeProvider{response: "annyeonghaseyo"}
	svc := NewTranslateService(provider, logSvc)

	res, err := svc.Translate(context.Background(), user.UserIdx, nil, &dto.TranslateRequest{
		Text:       "hello",
		TargetLang: constant.LangKorean,
	})
	require.NoError(t, err)
	assert.Equal(t, "annyeonghaseyo", res.TranslatedText)
	require.NotZero(t, res.ChatSessionId)

	var featureTypes []string
	for _, m := range factory.store.messages {
		featureTypes = append(featureTypes, m.FeatureType)
	}
	require.Len(t, featureTypes, 2)
	assert.Equal(t, constant.FeatureTypeTranslate, featureTypes[0])
}

func TestTranslateProviderFailure(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	logSvc, _, _ := newLogService(factory)
	provider := &fakeProvider{err: errors.New("timeout")}
	svc := NewTranslateService(provider, logSvc)

	_, err := svc.Translate(context.Background(), user.UserIdx, nil, &dto.TranslateRequest{
		Text:       "hello",
		TargetLang: constant.LangKorean,
	})
	assert.True(t, apperror.Is(err, apperror.CodeUpstream))
	assert.Empty(t, factory.store.messages, "a failed translation is never logged")
}

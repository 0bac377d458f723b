package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMessages(f *fakeRepositoryFactory, sessionId int64, contents ...string) {
	repo := f.NewUnitOfWork(context.Background()).ChatMessageRepository()
	base := time.Now()
	for i, content := range contents {
		role := constant.ChatMessageRoleUser
		if i%2 == 1 {
			role = constant.ChatMessageRoleAssistant
		}
		_ = repo.Create(context.Background(), &entity.ChatMessage{
			ChatSessionId: sessionId,
			Role:          role,
			FeatureType:   constant.FeatureTypeChat,
			Content:       content,
			CreatedAt:     base.Add(time.Duration(i) * time.Millisecond),
		})
	}
}

func TestMaybeSetTitleSetsAndTruncates(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "what is photosynthesis", "it is how plants make food")

	provider := &fakeProvider{response: "\"Photosynthesis basics and how plants turn light into food\"\n"}
	svc := NewTitleService(factory, provider, time.Second, nopLogger{})

	outcome, err := svc.MaybeSetTitle(context.Background(), session.ChatSessionId)
	require.NoError(t, err)
	assert.Equal(t, TitleSet, outcome)

	stored := factory.store.sessions[session.ChatSessionId]
	require.NotNil(t, stored.Title)
	assert.NotContains(t, *stored.Title, "\"")
	assert.NotContains(t, *stored.Title, "\n")
	assert.LessOrEqual(t, len([]rune(*stored.Title)), constant.TitleMaxChars)
}

func TestMaybeSetTitleIdempotent(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "hola", "hola!")

	provider := &fakeProvider{response: "Saludos"}
	svc := NewTitleService(factory, provider, time.Second, nopLogger{})

	outcome, err := svc.MaybeSetTitle(context.Background(), session.ChatSessionId)
	require.NoError(t, err)
	assert.Equal(t, TitleSet, outcome)

	outcome, err = svc.MaybeSetTitle(context.Background(), session.ChatSessionId)
	require.NoError(t, err)
	assert.Equal(t, TitleSkippedTitled, outcome)
	assert.Equal(t, 1, provider.calls, "a titled session must not hit the provider again")
}

func TestMaybeSetTitleSkipsTitledSession(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	title := "already named"
	session := seedSession(factory, user.UserIdx, &title)

	provider := &fakeProvider{response: "unused"}
	svc := NewTitleService(factory, provider, time.Second, nopLogger{})

	outcome, err := svc.MaybeSetTitle(context.Background(), session.ChatSessionId)
	require.NoError(t, err)
	assert.Equal(t, TitleSkippedTitled, outcome)
	assert.Zero(t, provider.calls)
}

func TestMaybeSetTitleEmptySession(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)

	provider := &fakeProvider{response: "unused"}
	svc := NewTitleService(factory, provider, time.Second, nopLogger{})

	outcome, err := svc.MaybeSetTitle(context.Background(), session.ChatSessionId)
	require.NoError(t, err)
	assert.Equal(t, TitleSkippedEmpty, outcome)
	assert.Zero(t, provider.calls)
}

func TestMaybeSetTitleSwallowsProviderFailure(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "q", "a")

	provider := &fakeProvider{err: errors.New("provider down")}
	svc := NewTitleService(factory, provider, time.Second, nopLogger{})

	outcome, err := svc.MaybeSetTitle(context.Background(), session.ChatSessionId)
	require.NoError(t, err, "provider failures are cosmetic, never surfaced")
	assert.Equal(t, TitleFailedUpstream, outcome)
	assert.Nil(t, factory.store.sessions[session.ChatSessionId].Title)
}

func TestMaybeSetTitlePromptUsesEarliestMessages(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, constant.LangEnglish)
	session := seedSession(factory, user.UserIdx, nil)
	seedMessages(factory, session.ChatSessionId, "first", "second", "third", "fourth", "fifth", "sixth")

	provider := &fakeProvider{response: "Title"}
	svc := NewTitleService(factory, provider, time.Second, nopLogger{})

	_, err := svc.MaybeSetTitle(context.Background(), session.ChatSessionId)
	require.NoError(t, err)

	require.Len(t, provider.lastHist, 2)
	prompt := provider.lastHist[1].Content
	assert.Contains(t, prompt, "first")
	assert.Contains(t, prompt, "fourth")
	assert.NotContains(t, prompt, "fifth")
}

func TestBuildTitlePromptClipsLongContent(t *testing.T) {
	long := strings.Repeat("x", constant.TitlePromptContentLimit+100)
	prompt := buildTitlePrompt([]*entity.ChatMessage{
		{Role: constant.ChatMessageRoleUser, Content: long},
	})
	assert.NotContains(t, prompt, strings.Repeat("x", constant.TitlePromptContentLimit+1))
	assert.Contains(t, prompt, strings.Repeat("x", constant.TitlePromptContentLimit))
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "Biology notes", want: "Biology notes"},
		{name: "quoted", raw: "\"Biology notes\"", want: "Biology notes"},
		{name: "multiline", raw: "Biology\nnotes", want: "Biology notes"},
		{name: "whitespace only", raw: "   \n  ", want: ""},
		{name: "truncated", raw: strings.Repeat("a", 60), want: strings.Repeat("a", constant.TitleMaxChars)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeTitle(tt.raw))
		})
	}
}

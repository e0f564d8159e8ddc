package services

import (
	"context"
	"strings"
	"testing"

	"aurastylist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionStartsWithGreeting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session, err := env.sessions.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SessionIdle, session.State)

	messages, err := env.messages.List(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.SenderAssistant, messages[0].Sender)
	assert.Equal(t, GreetingText, messages[0].Text)
	assert.True(t, strings.HasPrefix(messages[0].ID, "aura-intro"))

	closet, err := env.closet.List(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, closet)
}

func TestCreateSessionWithDemoCloset(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.SeedDemoCloset = true
	ctx := context.Background()

	session, err := env.sessions.Create(ctx)
	require.NoError(t, err)

	closet, err := env.closet.List(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, closet, len(demoCloset))
	assert.Equal(t, "Navy Blue Blazer", closet[0].Name)
	assert.Equal(t, "Tan Trench Coat", closet[len(closet)-1].Name)
}

func TestSessionStateTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.newSession(t)

	require.NoError(t, env.sessions.BeginAwaiting(ctx, sessionID))
	session, err := env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionAwaitingResponse, session.State)

	assert.ErrorIs(t, env.sessions.BeginAwaiting(ctx, sessionID), ErrAwaitingResponse)

	require.NoError(t, env.sessions.FinishAwaiting(ctx, sessionID))
	session, err = env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionIdle, session.State)

	assert.ErrorIs(t, env.sessions.BeginAwaiting(ctx, "missing"), ErrNotFound)
}

func TestGetOrCreateForTelegramReusesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.sessions.GetOrCreateForTelegram(ctx, 42)
	require.NoError(t, err)
	second, err := env.sessions.GetOrCreateForTelegram(ctx, 42)
	require.NoError(t, err)
	other, err := env.sessions.GetOrCreateForTelegram(ctx, 43)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestConversationAppendOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.newSession(t)

	user, err := env.messages.Append(ctx, sessionID, models.Message{Sender: models.SenderUser, Text: "hi"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "user-"))
	outfit := models.GeneratedOutfit{OutfitName: "X", IntroText: "Y", Items: []models.OutfitItemSuggestion{{ItemName: "Jeans"}}}
	aura, err := env.messages.Append(ctx, sessionID, models.Message{Sender: models.SenderAssistant, Text: "Y", Outfit: &outfit})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(aura.ID, "aura-"))

	messages, err := env.messages.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, user.ID, messages[1].ID)
	assert.Equal(t, aura.ID, messages[2].ID)
	require.NotNil(t, messages[2].Outfit)
	assert.Equal(t, outfit, *messages[2].Outfit)

	latest, err := env.messages.LatestOutfit(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, aura.ID, latest.ID)

	_, err = env.messages.LatestOutfit(ctx, env.newSession(t))
	assert.ErrorIs(t, err, ErrNotFound)
}

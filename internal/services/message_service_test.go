package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konnect/internal/models"
)

func TestSendMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminUser(t, "admin@example.com")
	biz := env.business(t, "b@example.com", "Biz")
	creator := env.creator(t, "c@example.com", "Cre")
	require.NoError(t, env.admin.BanUser(env.ctx, admin.ID, creator.ID))

	tests := []struct {
		name     string
		receiver uint
		content  string
	}{
		{"empty", admin.ID, "   "},
		{"too long", admin.ID, strings.Repeat("m", maxMessageLength+1)},
		{"self", biz.ID, "hello me"},
		{"unknown receiver", 5150, "hello?"},
		{"banned receiver", creator.ID, "are you there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.messages.Send(env.ctx, biz.ID, tt.receiver, tt.content)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}

	assert.Zero(t, env.count(t, &models.Message{}))
	assert.Empty(t, env.notifier.events)
}

func TestSendMessageNotifiesReceiver(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	creator := env.creator(t, "c@example.com", "Cre")

	msg, err := env.messages.Send(env.ctx, biz.ID, creator.ID, "  hi there  ")
	require.NoError(t, err)
	assert.Equal(t, "hi there", msg.Content)
	assert.False(t, msg.IsRead)

	require.Len(t, env.notifier.events, 1)
	ev := env.notifier.events[0]
	assert.Equal(t, creator.ID, ev.userID)
	assert.Equal(t, EventNewMessage, ev.event)
	assert.Equal(t, msg, ev.payload)
}

func TestConversationMarksRead(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	creator := env.creator(t, "c@example.com", "Cre")

	for _, text := range []string{"one", "two", "three"} {
		_, err := env.messages.Send(env.ctx, biz.ID, creator.ID, text)
		require.NoError(t, err)
	}
	_, err := env.messages.Send(env.ctx, creator.ID, biz.ID, "reply")
	require.NoError(t, err)

	unread, err := env.messages.UnreadCount(env.ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	msgs, err := env.messages.Conversation(env.ctx, creator.ID, biz.ID, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "reply", msgs[0].Content)
	assert.Equal(t, "one", msgs[3].Content)

	unread, err = env.messages.UnreadCount(env.ctx, creator.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// the business has not opened the thread yet
	unread, err = env.messages.UnreadCount(env.ctx, biz.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	_, err = env.messages.Conversation(env.ctx, creator.ID, 777, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := env.messages.Conversation(env.ctx, creator.ID, biz.ID, 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestConversationsLatestPerPartner(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	alice := env.creator(t, "alice@example.com", "Alice")
	bob := env.creator(t, "bob@example.com", "Bob")

	send := func(from, to uint, text string) {
		_, err := env.messages.Send(env.ctx, from, to, text)
		require.NoError(t, err)
	}
	send(biz.ID, alice.ID, "hi alice")
	send(alice.ID, biz.ID, "hello back")
	send(biz.ID, bob.ID, "hi bob")
	send(alice.ID, biz.ID, "still there?")

	summaries, err := env.messages.Conversations(env.ctx, biz.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, alice.ID, summaries[0].Partner.ID)
	assert.Equal(t, "Alice", summaries[0].Partner.DisplayName)
	assert.Equal(t, "still there?", summaries[0].LastMessage.Content)
	assert.Equal(t, int64(2), summaries[0].Partner.Unread)

	assert.Equal(t, bob.ID, summaries[1].Partner.ID)
	assert.Equal(t, "hi bob", summaries[1].LastMessage.Content)
	assert.Zero(t, summaries[1].Partner.Unread)
}

func TestChatPartners(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminUser(t, "admin@example.com")
	biz := env.business(t, "b@example.com", "Acme")
	creator := env.creator(t, "c@example.com", "Cre")
	banned := env.creator(t, "x@example.com", "Gone")
	require.NoError(t, env.admin.BanUser(env.ctx, admin.ID, banned.ID))

	_, err := env.messages.Send(env.ctx, biz.ID, creator.ID, "ping")
	require.NoError(t, err)

	partners, err := env.messages.ChatPartners(env.ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, partners, 2)

	names := map[uint]ChatPartner{}
	for _, p := range partners {
		names[p.ID] = p
	}
	assert.NotContains(t, names, creator.ID)
	assert.NotContains(t, names, banned.ID)
	assert.Equal(t, "Admin (admin@example.com)", names[admin.ID].DisplayName)
	assert.Equal(t, "Acme", names[biz.ID].DisplayName)
	assert.Equal(t, models.RoleBusiness, names[biz.ID].Role)
	assert.Equal(t, int64(1), names[biz.ID].Unread)
}

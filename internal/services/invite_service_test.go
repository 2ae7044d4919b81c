package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konnect/internal/models"
)

func TestSendInvite(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	creator := env.creator(t, "c@example.com", "Cre")
	c := env.campaign(t, biz.ID, "Launch")

	invite, err := env.invites.Send(env.ctx, biz.ID, creator.ID, c.ID, "join us")
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, invite.Status)
	assert.Nil(t, invite.RespondedAt)

	_, err = env.invites.Send(env.ctx, biz.ID, creator.ID, c.ID, "again")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int64(1), env.count(t, &models.Invite{}))

	received, err := env.invites.ListForCreator(env.ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Business)
	assert.Equal(t, "Biz", received[0].Business.CompanyName)

	sent, err := env.invites.ListForCampaign(env.ctx, biz.ID, c.ID)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestSendInviteRejections(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	other := env.business(t, "o@example.com", "Other")
	creator := env.creator(t, "c@example.com", "Cre")
	banned := env.creator(t, "banned@example.com", "Banned")
	c := env.campaign(t, biz.ID, "Launch")

	_, err := env.repo.SetUserBanned(env.ctx, banned.ID, true)
	require.NoError(t, err)

	_, err = env.invites.Send(env.ctx, other.ID, creator.ID, c.ID, "")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = env.invites.Send(env.ctx, biz.ID, banned.ID, c.ID, "")
	assert.True(t, IsValidation(err))

	_, err = env.invites.Send(env.ctx, biz.ID, other.ID, c.ID, "")
	assert.True(t, IsValidation(err), "businesses cannot be invited")

	_, err = env.invites.Send(env.ctx, biz.ID, creator.ID, c.ID, strings.Repeat("x", 1001))
	assert.True(t, IsValidation(err))

	_, err = env.invites.Send(env.ctx, biz.ID, creator.ID, 999, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.campaigns.Update(env.ctx, biz.ID, c.ID, CampaignInput{Title: "Launch", Description: "d", Status: "completed"})
	require.NoError(t, err)
	_, err = env.invites.Send(env.ctx, biz.ID, creator.ID, c.ID, "")
	assert.True(t, IsValidation(err))

	assert.Equal(t, int64(0), env.count(t, &models.Invite{}))
}

func TestRespondToInviteOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	creator := env.creator(t, "c@example.com", "Cre")
	stranger := env.creator(t, "s@example.com", "Stranger")
	c := env.campaign(t, biz.ID, "Launch")

	invite, err := env.invites.Send(env.ctx, biz.ID, creator.ID, c.ID, "")
	require.NoError(t, err)

	assert.ErrorIs(t, env.invites.Respond(env.ctx, stranger.ID, invite.ID, true), ErrNotOwner)

	require.NoError(t, env.invites.Respond(env.ctx, creator.ID, invite.ID, true))
	assert.ErrorIs(t, env.invites.Respond(env.ctx, creator.ID, invite.ID, false), ErrConflict)

	var row models.Invite
	env.reload(t, &row, invite.ID)
	assert.Equal(t, models.InviteStatusAccepted, row.Status)
	assert.NotNil(t, row.RespondedAt)

	assert.ErrorIs(t, env.invites.Respond(env.ctx, creator.ID, 555, true), ErrNotFound)
}

func TestCancelInvite(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	other := env.business(t, "o@example.com", "Other")
	creator := env.creator(t, "c@example.com", "Cre")
	c1 := env.campaign(t, biz.ID, "One")
	c2 := env.campaign(t, biz.ID, "Two")

	pending, err := env.invites.Send(env.ctx, biz.ID, creator.ID, c1.ID, "")
	require.NoError(t, err)
	answered, err := env.invites.Send(env.ctx, biz.ID, creator.ID, c2.ID, "")
	require.NoError(t, err)
	require.NoError(t, env.invites.Respond(env.ctx, creator.ID, answered.ID, false))

	assert.ErrorIs(t, env.invites.Cancel(env.ctx, other.ID, pending.ID), ErrNotOwner)
	assert.ErrorIs(t, env.invites.Cancel(env.ctx, biz.ID, answered.ID), ErrConflict)
	require.NoError(t, env.invites.Cancel(env.ctx, biz.ID, pending.ID))

	assert.Equal(t, int64(1), env.count(t, &models.Invite{}))
}

func TestRespondToInviteAfterCampaignDeleted(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	creator := env.creator(t, "c@example.com", "Cre")
	c := env.campaign(t, biz.ID, "Launch")

	invite, err := env.invites.Send(env.ctx, biz.ID, creator.ID, c.ID, "join us")
	require.NoError(t, err)
	require.NoError(t, env.campaigns.Delete(env.ctx, biz.ID, c.ID))

	err = env.invites.Respond(env.ctx, creator.ID, invite.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	var row models.Invite
	env.reload(t, &row, invite.ID)
	assert.Equal(t, models.InviteStatusPending, row.Status)
	assert.Nil(t, row.RespondedAt)

	require.NoError(t, env.invites.Cancel(env.ctx, biz.ID, invite.ID))
}

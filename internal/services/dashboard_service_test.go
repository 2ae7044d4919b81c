package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konnect/internal/models"
)

func TestDashboards(t *testing.T) {
	env := newTestEnv(t)
	biz := env.business(t, "b@example.com", "Biz")
	creator := env.creator(t, "c@example.com", "Cre")
	other := env.creator(t, "o@example.com", "Other")

	first := env.campaign(t, biz.ID, "First")
	second := env.campaign(t, biz.ID, "Second")
	_, err := env.campaigns.Update(env.ctx, biz.ID, second.ID, CampaignInput{Title: "Second", Description: "D", Status: "completed"})
	require.NoError(t, err)

	app, err := env.applications.Apply(env.ctx, creator.ID, first.ID, "pick me")
	require.NoError(t, err)
	_, err = env.applications.Apply(env.ctx, other.ID, first.ID, "me too")
	require.NoError(t, err)
	require.NoError(t, env.applications.Respond(env.ctx, biz.ID, app.ID, true))

	_, err = env.invites.Send(env.ctx, biz.ID, creator.ID, first.ID, "join us")
	require.NoError(t, err)
	_, err = env.messages.Send(env.ctx, biz.ID, creator.ID, "hello")
	require.NoError(t, err)

	cd, err := env.dashboards.Creator(env.ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cd.Applications[models.ApplicationStatusAccepted])
	assert.Equal(t, int64(1), cd.PendingInvites)
	assert.Equal(t, int64(1), cd.UnreadMessages)
	assert.False(t, cd.ProfileComplete)

	bd, err := env.dashboards.Business(env.ctx, biz.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bd.Campaigns[models.CampaignStatusActive])
	assert.Equal(t, int64(1), bd.Campaigns[models.CampaignStatusCompleted])
	assert.Equal(t, int64(1), bd.PendingApplications)
	assert.Equal(t, int64(1), bd.PendingInvites)
	assert.Zero(t, bd.UnreadMessages)
	assert.Equal(t, "Biz", bd.Profile.CompanyName)
}

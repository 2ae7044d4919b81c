package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPNG = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

type campaignJSON struct {
	ID               uint    `json:"id"`
	Title            string  `json:"title"`
	Status           string  `json:"status"`
	ProductImagePath *string `json:"product_image_path"`
}

func createCampaign(t *testing.T, s *server, token, title string) campaignJSON {
	t.Helper()
	res := s.postMultipart("/business/campaigns?action=create", token, map[string]string{
		"title":       title,
		"description": "About " + title,
		"budget":      "1500.50",
		"startDate":   "2026-11-01",
		"endDate":     "2026-12-01",
	}, "productImage", "product.png", testPNG)
	require.Equal(t, http.StatusCreated, res.Code, res.Error)

	var c campaignJSON
	res.decode(t, &c)
	return c
}

func TestApplyAndAcceptFlow(t *testing.T) {
	s := newServer(t)
	_, bizToken := s.signup("b@example.com", "business", "Acme")
	_, creatorToken := s.signup("c@example.com", "creator", "Cre")

	c := createCampaign(t, s, bizToken, "Summer launch")
	assert.Equal(t, "active", c.Status)
	require.NotNil(t, c.ProductImagePath)

	res := s.get("/creator/campaigns?search=summer", creatorToken)
	require.Equal(t, http.StatusOK, res.Code)
	var page struct {
		Items []campaignJSON `json:"items"`
		Total int64          `json:"total"`
	}
	res.decode(t, &page)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, c.ID, page.Items[0].ID)

	apply := url.Values{"campaignId": {itoa(c.ID)}, "pitchMessage": {"I love summer"}}
	res = s.postForm("/creator/apply", creatorToken, apply)
	require.Equal(t, http.StatusCreated, res.Code, res.Error)
	var app struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	res.decode(t, &app)
	assert.Equal(t, "pending", app.Status)

	res = s.postForm("/creator/apply", creatorToken, apply)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = s.get("/business/applicants?campaignId="+itoa(c.ID), bizToken)
	require.Equal(t, http.StatusOK, res.Code)
	var applicants []struct {
		ID uint `json:"id"`
	}
	res.decode(t, &applicants)
	require.Len(t, applicants, 1)

	res = s.postForm("/business/applicants?action=accept", bizToken, url.Values{"applicationId": {itoa(app.ID)}})
	require.Equal(t, http.StatusOK, res.Code, res.Error)

	// settled applications cannot be answered again
	res = s.postForm("/business/applicants?action=reject", bizToken, url.Values{"applicationId": {itoa(app.ID)}})
	assert.Equal(t, http.StatusConflict, res.Code)

	res = s.get("/creator/applications", creatorToken)
	require.Equal(t, http.StatusOK, res.Code)
	var mine []struct {
		Status string `json:"status"`
	}
	res.decode(t, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "accepted", mine[0].Status)
}

func TestCampaignOwnershipAndDelete(t *testing.T) {
	s := newServer(t)
	_, bizToken := s.signup("b@example.com", "business", "Acme")
	_, rivalToken := s.signup("r@example.com", "business", "Rival")
	_, creatorToken := s.signup("c@example.com", "creator", "Cre")

	c := createCampaign(t, s, bizToken, "Winter")

	res := s.get("/business/campaigns?action=view&id="+itoa(c.ID), rivalToken)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = s.postForm("/business/campaigns?action=delete", rivalToken, url.Values{"campaignId": {itoa(c.ID)}})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = s.postForm("/business/campaigns?action=edit", bizToken, url.Values{
		"campaignId":  {itoa(c.ID)},
		"title":       {"Winter sale"},
		"description": {"Updated"},
		"status":      {"inactive"},
	})
	require.Equal(t, http.StatusOK, res.Code, res.Error)

	res = s.postForm("/creator/apply", creatorToken, url.Values{"campaignId": {itoa(c.ID)}})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = s.postForm("/business/campaigns?action=delete", bizToken, url.Values{"campaignId": {itoa(c.ID)}})
	require.Equal(t, http.StatusOK, res.Code)

	res = s.get("/business/campaigns", bizToken)
	require.Equal(t, http.StatusOK, res.Code)
	var list []campaignJSON
	res.decode(t, &list)
	assert.Empty(t, list)

	assert.Equal(t, http.StatusNotFound, s.get("/creator/campaigns/"+itoa(c.ID), creatorToken).Code)
}

func TestCampaignCreateRejectsBadUpload(t *testing.T) {
	s := newServer(t)
	_, bizToken := s.signup("b@example.com", "business", "Acme")

	res := s.postMultipart("/business/campaigns?action=create", bizToken, map[string]string{
		"title":       "T",
		"description": "D",
	}, "productImage", "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "productImage", res.Field)
}

func TestInviteFlow(t *testing.T) {
	s := newServer(t)
	_, bizToken := s.signup("b@example.com", "business", "Acme")
	creatorID, creatorToken := s.signup("c@example.com", "creator", "Cre")
	c := createCampaign(t, s, bizToken, "Spring")

	invite := url.Values{"creatorId": {itoa(creatorID)}, "campaignId": {itoa(c.ID)}, "inviteMessage": {"join us"}}
	res := s.postForm("/business/invite", bizToken, invite)
	require.Equal(t, http.StatusCreated, res.Code, res.Error)
	var inv struct {
		ID uint `json:"id"`
	}
	res.decode(t, &inv)

	assert.Equal(t, http.StatusConflict, s.postForm("/business/invite", bizToken, invite).Code)

	res = s.get("/creator/invites", creatorToken)
	require.Equal(t, http.StatusOK, res.Code)

	res = s.postForm("/creator/invites?action=accept", creatorToken, url.Values{"inviteId": {itoa(inv.ID)}})
	require.Equal(t, http.StatusOK, res.Code, res.Error)

	res = s.postForm("/creator/invites?action=reject", creatorToken, url.Values{"inviteId": {itoa(inv.ID)}})
	assert.Equal(t, http.StatusConflict, res.Code)

	res = s.postForm("/business/invites/cancel", bizToken, url.Values{"inviteId": {itoa(inv.ID)}})
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestCreatorSearchAndProfiles(t *testing.T) {
	s := newServer(t)
	_, bizToken := s.signup("b@example.com", "business", "Acme")
	creatorID, creatorToken := s.signup("c@example.com", "creator", "Cre")

	res := s.postMultipart("/creator/profile", creatorToken, map[string]string{
		"displayName":      "Cre Ative",
		"bio":              "Runner",
		"niche":            "Fitness",
		"followerCount":    "2500",
		"social_instagram": "https://instagram.com/cre",
	}, "mediaKit", "kit.png", testPNG)
	require.Equal(t, http.StatusOK, res.Code, res.Error)

	res = s.postForm("/creator/profile", creatorToken, url.Values{"displayName": {"Cre"}, "followerCount": {"many"}})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "followerCount", res.Field)

	res = s.get("/business/creators?niche=fit&minFollowers=1000", bizToken)
	require.Equal(t, http.StatusOK, res.Code)
	var page struct {
		Items []struct {
			UserID      uint   `json:"user_id"`
			DisplayName string `json:"display_name"`
		} `json:"items"`
	}
	res.decode(t, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, creatorID, page.Items[0].UserID)

	res = s.get("/business/creators?minFollowers=5000", bizToken)
	require.Equal(t, http.StatusOK, res.Code)
	res.decode(t, &page)
	assert.Empty(t, page.Items)

	res = s.get("/business/creators/"+itoa(creatorID), bizToken)
	require.Equal(t, http.StatusOK, res.Code)

	res = s.postJSON("/business/profile", bizToken, map[string]string{"companyName": "Acme", "website": "acme.test"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "website", res.Field)

	res = s.postJSON("/business/profile", bizToken, map[string]string{"companyName": "Acme", "website": "https://acme.test"})
	assert.Equal(t, http.StatusOK, res.Code)
}

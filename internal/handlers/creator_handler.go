package handlers

import (
	"github.com/gin-gonic/gin"

	"konnect/internal/auth"
	"konnect/internal/services"
)

// CreatorHandler serves the creator pages
type CreatorHandler struct {
	campaigns    *services.CampaignService
	applications *services.ApplicationService
	invites      *services.InviteService
	creators     *services.CreatorService
	dashboards   *services.DashboardService
}

func NewCreatorHandler(
	campaigns *services.CampaignService,
	applications *services.ApplicationService,
	invites *services.InviteService,
	creators *services.CreatorService,
	dashboards *services.DashboardService,
) *CreatorHandler {
	return &CreatorHandler{
		campaigns:    campaigns,
		applications: applications,
		invites:      invites,
		creators:     creators,
		dashboards:   dashboards,
	}
}

// GET /creator/dashboard
func (h *CreatorHandler) Dashboard(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	dashboard, err := h.dashboards.Creator(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dashboard)
}

// ListCampaigns browses active campaigns
// GET /creator/campaigns?search=&page=
func (h *CreatorHandler) ListCampaigns(c *gin.Context) {
	page, err := h.campaigns.ListActive(c.Request.Context(), c.Query("search"), pageOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// GET /creator/campaigns/:id
func (h *CreatorHandler) GetCampaign(c *gin.Context) {
	campaignID, err := idParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	campaign, err := h.campaigns.GetActive(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, campaign)
}

// Apply submits an application to an active campaign
// POST /creator/apply
func (h *CreatorHandler) Apply(c *gin.Context) {
	var req struct {
		CampaignID   uint   `form:"campaignId" json:"campaignId" binding:"required"`
		PitchMessage string `form:"pitchMessage" json:"pitchMessage"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "campaignId is required")
		return
	}

	userID, _ := auth.GetUserID(c)
	application, err := h.applications.Apply(c.Request.Context(), userID, req.CampaignID, req.PitchMessage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, application)
}

// GET /creator/applications
func (h *CreatorHandler) ListApplications(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	applications, err := h.applications.ListForCreator(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, applications)
}

// ApplicationAction withdraws a pending application or deletes a settled one
// POST /creator/applications?action=withdraw|delete
func (h *CreatorHandler) ApplicationAction(c *gin.Context) {
	applicationID, err := idParam(c, "applicationId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()

	switch actionOf(c) {
	case "withdraw":
		err = h.applications.Withdraw(ctx, userID, applicationID)
	case "delete":
		err = h.applications.Delete(ctx, userID, applicationID)
	default:
		respondBadRequest(c, "action must be withdraw or delete")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Application updated")
}

// GET /creator/invites
func (h *CreatorHandler) ListInvites(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	invites, err := h.invites.ListForCreator(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, invites)
}

// InviteAction accepts or rejects a pending invite
// POST /creator/invites?action=accept|reject
func (h *CreatorHandler) InviteAction(c *gin.Context) {
	inviteID, err := idParam(c, "inviteId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var accept bool
	switch actionOf(c) {
	case "accept":
		accept = true
	case "reject":
	default:
		respondBadRequest(c, "action must be accept or reject")
		return
	}

	userID, _ := auth.GetUserID(c)
	if err := h.invites.Respond(c.Request.Context(), userID, inviteID, accept); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Invite updated")
}

// GET /creator/profile
func (h *CreatorHandler) GetProfile(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	profile, err := h.creators.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// UpdateProfile saves the profile form, optionally with a mediaKit file
// POST /creator/profile
func (h *CreatorHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		DisplayName   string `form:"displayName" json:"displayName"`
		Bio           string `form:"bio" json:"bio"`
		Niche         string `form:"niche" json:"niche"`
		PricingInfo   string `form:"pricingInfo" json:"pricingInfo"`
		FollowerCount string `form:"followerCount" json:"followerCount"`
		Instagram     string `form:"social_instagram" json:"social_instagram"`
		YouTube       string `form:"social_youtube" json:"social_youtube"`
		TikTok        string `form:"social_tiktok" json:"social_tiktok"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid profile form")
		return
	}

	mediaKit, closeFile, err := formUpload(c, "mediaKit")
	if err != nil {
		respondBadRequest(c, "could not read mediaKit upload")
		return
	}
	defer closeFile()

	userID, _ := auth.GetUserID(c)
	profile, err := h.creators.UpdateProfile(c.Request.Context(), userID, services.CreatorProfileInput{
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		Niche:         req.Niche,
		PricingInfo:   req.PricingInfo,
		FollowerCount: req.FollowerCount,
		Instagram:     req.Instagram,
		YouTube:       req.YouTube,
		TikTok:        req.TikTok,
		MediaKit:      mediaKit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"konnect/internal/auth"
	"konnect/internal/services"
)

// BusinessHandler serves the business pages
type BusinessHandler struct {
	campaigns    *services.CampaignService
	applications *services.ApplicationService
	invites      *services.InviteService
	creators     *services.CreatorService
	businesses   *services.BusinessService
	dashboards   *services.DashboardService
}

func NewBusinessHandler(
	campaigns *services.CampaignService,
	applications *services.ApplicationService,
	invites *services.InviteService,
	creators *services.CreatorService,
	businesses *services.BusinessService,
	dashboards *services.DashboardService,
) *BusinessHandler {
	return &BusinessHandler{
		campaigns:    campaigns,
		applications: applications,
		invites:      invites,
		creators:     creators,
		businesses:   businesses,
		dashboards:   dashboards,
	}
}

type campaignForm struct {
	Title        string `form:"title" json:"title"`
	Description  string `form:"description" json:"description"`
	Requirements string `form:"requirements" json:"requirements"`
	Budget       string `form:"budget" json:"budget"`
	StartDate    string `form:"startDate" json:"startDate"`
	EndDate      string `form:"endDate" json:"endDate"`
	Status       string `form:"status" json:"status"`
}

// GET /business/dashboard
func (h *BusinessHandler) Dashboard(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	dashboard, err := h.dashboards.Business(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dashboard)
}

// GetCampaigns lists the business's campaigns or shows one of them
// GET /business/campaigns?action=list|view&id=
func (h *BusinessHandler) GetCampaigns(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()

	switch actionOf(c) {
	case "", "list":
		campaigns, err := h.campaigns.ListForBusiness(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, campaigns)

	case "view", "edit":
		campaignID, err := idParam(c, "id")
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		campaign, err := h.campaigns.GetForOwner(ctx, userID, campaignID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, campaign)

	default:
		respondBadRequest(c, "action must be list or view")
	}
}

// PostCampaigns creates, edits or deletes a campaign. create and edit accept a productImage file.
// POST /business/campaigns?action=create|edit|delete
func (h *BusinessHandler) PostCampaigns(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()
	action := actionOf(c)

	if action == "delete" {
		campaignID, err := idParam(c, "campaignId")
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		if err := h.campaigns.Delete(ctx, userID, campaignID); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Campaign deleted")
		return
	}
	if action != "create" && action != "edit" {
		respondBadRequest(c, "action must be create, edit or delete")
		return
	}

	var form campaignForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "invalid campaign form")
		return
	}
	image, closeFile, err := formUpload(c, "productImage")
	if err != nil {
		respondBadRequest(c, "could not read productImage upload")
		return
	}
	defer closeFile()

	in := services.CampaignInput{
		Title:        form.Title,
		Description:  form.Description,
		Requirements: form.Requirements,
		Budget:       form.Budget,
		StartDate:    form.StartDate,
		EndDate:      form.EndDate,
		Status:       form.Status,
		Image:        image,
	}

	if action == "create" {
		campaign, err := h.campaigns.Create(ctx, userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondCreated(c, campaign)
		return
	}

	campaignID, err := idParam(c, "campaignId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	campaign, err := h.campaigns.Update(ctx, userID, campaignID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, campaign)
}

// GET /business/applicants?campaignId=
func (h *BusinessHandler) ListApplicants(c *gin.Context) {
	campaignID, err := idParam(c, "campaignId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID, _ := auth.GetUserID(c)

	applications, err := h.applications.ListForCampaign(c.Request.Context(), userID, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, applications)
}

// ApplicantAction accepts or rejects a pending application
// POST /business/applicants?action=accept|reject
func (h *BusinessHandler) ApplicantAction(c *gin.Context) {
	applicationID, err := idParam(c, "applicationId")
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
	if err := h.applications.Respond(c.Request.Context(), userID, applicationID, accept); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Application updated")
}

// SearchCreators lists creators for outreach
// GET /business/creators?niche=&minFollowers=&page=
func (h *BusinessHandler) SearchCreators(c *gin.Context) {
	minFollowers, _ := strconv.Atoi(c.Query("minFollowers"))

	page, err := h.creators.Search(c.Request.Context(), c.Query("niche"), minFollowers, pageOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// GET /business/creators/:id
func (h *BusinessHandler) GetCreator(c *gin.Context) {
	creatorID, err := idParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	creator, err := h.creators.GetPublicProfile(c.Request.Context(), creatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, creator)
}

// Invite sends a campaign invite to a creator
// POST /business/invite
func (h *BusinessHandler) Invite(c *gin.Context) {
	var req struct {
		CreatorID  uint   `form:"creatorId" json:"creatorId" binding:"required"`
		CampaignID uint   `form:"campaignId" json:"campaignId" binding:"required"`
		Message    string `form:"inviteMessage" json:"inviteMessage"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "creatorId and campaignId are required")
		return
	}

	userID, _ := auth.GetUserID(c)
	invite, err := h.invites.Send(c.Request.Context(), userID, req.CreatorID, req.CampaignID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, invite)
}

// GET /business/invites?campaignId=
func (h *BusinessHandler) ListInvites(c *gin.Context) {
	campaignID, err := idParam(c, "campaignId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID, _ := auth.GetUserID(c)

	invites, err := h.invites.ListForCampaign(c.Request.Context(), userID, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, invites)
}

// POST /business/invites/cancel
func (h *BusinessHandler) CancelInvite(c *gin.Context) {
	inviteID, err := idParam(c, "inviteId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID, _ := auth.GetUserID(c)

	if err := h.invites.Cancel(c.Request.Context(), userID, inviteID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Invite cancelled")
}

// GET /business/profile
func (h *BusinessHandler) GetProfile(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	profile, err := h.businesses.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// POST /business/profile
func (h *BusinessHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		CompanyName string `form:"companyName" json:"companyName"`
		Website     string `form:"website" json:"website"`
		Industry    string `form:"industry" json:"industry"`
		Description string `form:"description" json:"description"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid profile form")
		return
	}

	userID, _ := auth.GetUserID(c)
	profile, err := h.businesses.UpdateProfile(c.Request.Context(), userID, services.BusinessProfileInput{
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Industry:    req.Industry,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

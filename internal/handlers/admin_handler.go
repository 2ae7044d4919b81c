package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"konnect/internal/auth"
	"konnect/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
	reports      *services.ReportService
	campaigns    *services.CampaignService
}

func NewAdminHandler(adminService *services.AdminService, reports *services.ReportService, campaigns *services.CampaignService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		reports:      reports,
		campaigns:    campaigns,
	}
}

// GetDashboard returns admin dashboard data
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}

// GetUsers returns users matching search, or one user when id is given
func (h *AdminHandler) GetUsers(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("id") != "" {
		userID, err := idParam(c, "id")
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		user, err := h.adminService.GetUser(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, user)
		return
	}

	users, err := h.adminService.GetAllUsers(ctx, c.Query("search"), pageOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, users)
}

// UserAction bans or unbans a user
// POST /admin/users?action=ban|unban
func (h *AdminHandler) UserAction(c *gin.Context) {
	userID, err := idParam(c, "userId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	adminID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()

	switch actionOf(c) {
	case "ban":
		err = h.adminService.BanUser(ctx, adminID, userID)
	case "unban":
		err = h.adminService.UnbanUser(ctx, adminID, userID)
	default:
		respondBadRequest(c, "action must be ban or unban")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "User updated")
}

// GetCampaigns lists every campaign including deleted ones
func (h *AdminHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaigns.ListAll(c.Request.Context(), pageOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, campaigns)
}

// GetReports returns the report queue, or one report when id is given
func (h *AdminHandler) GetReports(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("id") != "" {
		reportID, err := idParam(c, "id")
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		report, err := h.reports.Get(ctx, reportID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, report)
		return
	}

	reports, err := h.reports.List(ctx, c.Query("status"), pageOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, reports)
}

// ReportAction moderates a report
// POST /admin/reports?action=updateStatus|banUserBasedOnReport|dismissReport
func (h *AdminHandler) ReportAction(c *gin.Context) {
	reportID, err := idParam(c, "reportId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	adminID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()

	switch actionOf(c) {
	case "updateStatus":
		status := c.Query("newStatus")
		if status == "" {
			status = c.PostForm("newStatus")
		}
		err = h.reports.UpdateStatus(ctx, adminID, reportID, status)
	case "banUserBasedOnReport":
		report, err := h.reports.BanFromReport(ctx, adminID, reportID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, report)
		return
	case "dismissReport":
		err = h.reports.Dismiss(ctx, adminID, reportID)
	default:
		respondBadRequest(c, "action must be updateStatus, banUserBasedOnReport or dismissReport")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Report updated")
}

// GetLogs returns admin activity logs
func (h *AdminHandler) GetLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.adminService.GetAdminLogs(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    logs,
		"limit":   limit,
		"offset":  offset,
	})
}

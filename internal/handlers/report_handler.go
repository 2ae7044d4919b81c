package handlers

import (
	"github.com/gin-gonic/gin"

	"konnect/internal/auth"
	"konnect/internal/services"
)

// ReportHandler lets creators report businesses and businesses report creators
type ReportHandler struct {
	reports *services.ReportService
	users   *services.UserService
}

func NewReportHandler(reports *services.ReportService, users *services.UserService) *ReportHandler {
	return &ReportHandler{reports: reports, users: users}
}

// Targets lists the accounts the caller may report
// GET /creator/report-business, GET /business/report-creator
func (h *ReportHandler) Targets(c *gin.Context) {
	user, _ := auth.GetUser(c)

	targets, err := h.users.ReportTargets(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, targets)
}

// Create files a report
// POST /creator/report-business, POST /business/report-creator
func (h *ReportHandler) Create(c *gin.Context) {
	var req struct {
		ReportedUserID uint   `form:"reportedUserId" json:"reportedUserId" binding:"required"`
		Reason         string `form:"reason" json:"reason"`
		Details        string `form:"details" json:"details"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "reportedUserId is required")
		return
	}

	user, _ := auth.GetUser(c)
	report, err := h.reports.Create(c.Request.Context(), user, services.ReportInput{
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Details:        req.Details,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, report)
}

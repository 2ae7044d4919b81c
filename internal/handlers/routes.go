package handlers

import (
	"github.com/gin-gonic/gin"

	"konnect/internal/auth"
	"konnect/internal/models"
)

// Handlers groups every route handler of the server
type Handlers struct {
	Auth     *AuthHandler
	Creator  *CreatorHandler
	Business *BusinessHandler
	Report   *ReportHandler
	Admin    *AdminHandler
	Chat     *ChatHandler
}

// RegisterRoutes mounts the public, shared and per-role routes on router
func RegisterRoutes(router gin.IRouter, sessions auth.SessionStore, h *Handlers) {
	router.POST("/register", h.Auth.Register)
	router.POST("/login", h.Auth.Login)
	router.POST("/logout", h.Auth.Logout)

	authed := router.Group("")
	authed.Use(auth.AuthMiddleware(sessions))
	authed.Use(auth.RequireRole(sessions, models.AllRoles()...))
	{
		authed.GET("/me", h.Auth.GetMe)
		authed.GET("/chat", h.Chat.Get)
		authed.POST("/chat", h.Chat.Post)
		authed.GET("/chat/ws", h.Chat.ServeWS)
	}

	creator := router.Group("/creator")
	creator.Use(auth.AuthMiddleware(sessions), auth.RequireRole(sessions, models.RoleCreator))
	{
		creator.GET("/dashboard", h.Creator.Dashboard)
		creator.GET("/campaigns", h.Creator.ListCampaigns)
		creator.GET("/campaigns/:id", h.Creator.GetCampaign)
		creator.POST("/apply", h.Creator.Apply)
		creator.GET("/applications", h.Creator.ListApplications)
		creator.POST("/applications", h.Creator.ApplicationAction)
		creator.GET("/invites", h.Creator.ListInvites)
		creator.POST("/invites", h.Creator.InviteAction)
		creator.GET("/profile", h.Creator.GetProfile)
		creator.POST("/profile", h.Creator.UpdateProfile)
		creator.GET("/report-business", h.Report.Targets)
		creator.POST("/report-business", h.Report.Create)
	}

	business := router.Group("/business")
	business.Use(auth.AuthMiddleware(sessions), auth.RequireRole(sessions, models.RoleBusiness))
	{
		business.GET("/dashboard", h.Business.Dashboard)
		business.GET("/campaigns", h.Business.GetCampaigns)
		business.POST("/campaigns", h.Business.PostCampaigns)
		business.GET("/applicants", h.Business.ListApplicants)
		business.POST("/applicants", h.Business.ApplicantAction)
		business.GET("/creators", h.Business.SearchCreators)
		business.GET("/creators/:id", h.Business.GetCreator)
		business.POST("/invite", h.Business.Invite)
		business.GET("/invites", h.Business.ListInvites)
		business.POST("/invites/cancel", h.Business.CancelInvite)
		business.GET("/profile", h.Business.GetProfile)
		business.POST("/profile", h.Business.UpdateProfile)
		business.GET("/report-creator", h.Report.Targets)
		business.POST("/report-creator", h.Report.Create)
	}

	admin := router.Group("/admin")
	admin.Use(auth.AuthMiddleware(sessions), auth.RequireRole(sessions, models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Admin.GetDashboard)
		admin.GET("/users", h.Admin.GetUsers)
		admin.POST("/users", h.Admin.UserAction)
		admin.GET("/campaigns", h.Admin.GetCampaigns)
		admin.GET("/reports", h.Admin.GetReports)
		admin.POST("/reports", h.Admin.ReportAction)
		admin.GET("/logs", h.Admin.GetLogs)
	}
}

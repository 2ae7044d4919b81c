package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"konnect/internal/auth"
	"konnect/internal/services"
)

// AuthHandler handles registration, login and the session cookie
type AuthHandler struct {
	authService  *services.AuthService
	userService  *services.UserService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		cookieSecure: cookieSecure,
	}
}

// Register creates a creator or business account
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email           string `form:"email" json:"email" binding:"required"`
		Password        string `form:"password" json:"password" binding:"required"`
		ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" binding:"required"`
		Role            string `form:"role" json:"role" binding:"required"`
		DisplayName     string `form:"displayName" json:"displayName"`
		CompanyName     string `form:"companyName" json:"companyName"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "email, password, confirmPassword and role are required")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
		DisplayName:     req.DisplayName,
		CompanyName:     req.CompanyName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, user)
}

// Login opens a session and sets the session cookie
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `form:"email" json:"email" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, services.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	auth.SetCookie(c, result.Token, int(time.Until(result.ExpiresAt).Seconds()), h.cookieSecure)

	respondOK(c, gin.H{
		"token":      result.Token,
		"user":       result.User,
		"redirect":   result.Redirect,
		"expires_at": result.ExpiresAt,
	})
}

// Logout revokes the current session if there is one and clears the cookie
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, ok := auth.SessionIDFromRequest(c); ok {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			respondError(c, err)
			return
		}
	}

	auth.ClearCookie(c, h.cookieSecure)
	respondMessage(c, "Successfully logged out")
}

// GetMe returns the currently authenticated user's profile
// GET /me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, profile)
}

package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"konnect/internal/models"
)

// CookieName is the cookie that carries the session token for browser clients.
const CookieName = "konnect_session"

const (
	ctxUserKey   = "user"
	ctxUserIDKey = "user_id"
)

// SessionStore resolves tokens to live sessions and revokes them.
type SessionStore interface {
	ResolveSession(ctx context.Context, sessionID uuid.UUID, userID uint) (*models.User, error)
	RevokeUserSessions(ctx context.Context, userID uint) error
}

// AuthMiddleware requires a live session and stores the session user in the context.
func AuthMiddleware(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := ValidateToken(tokenString)
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		sessionID, err := claims.SessionID()
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		user, err := sessions.ResolveSession(c.Request.Context(), sessionID, claims.UserID)
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxUserIDKey, user.ID)

		c.Next()
	}
}

// RequireRole admits only the listed roles. It runs after AuthMiddleware.
// A banned user is rejected and all of their sessions are revoked.
func RequireRole(sessions SessionStore, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		permitted := false
		for _, role := range roles {
			if user.Role == role {
				permitted = true
				break
			}
		}
		if !permitted {
			abort(c, http.StatusForbidden, "you do not have access to this page")
			return
		}

		if user.Banned {
			if err := sessions.RevokeUserSessions(c.Request.Context(), user.ID); err != nil {
				log.Printf("Failed to revoke sessions for banned user %d: %v", user.ID, err)
			}
			ClearCookie(c, false)
			abort(c, http.StatusForbidden, "your account has been banned")
			return
		}

		c.Next()
	}
}

// GetUser retrieves the authenticated user from the context
func GetUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// GetUserID retrieves the user ID from the context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint)
	return id, ok
}

// SessionIDFromRequest extracts the session reference without requiring it to be live.
func SessionIDFromRequest(c *gin.Context) (uuid.UUID, bool) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return uuid.Nil, false
	}
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := claims.SessionID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SetCookie hands the session token to browser clients.
func SetCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, maxAge, "/", "", secure, true)
}

// ClearCookie removes the session cookie.
func ClearCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

func tokenFromRequest(c *gin.Context) string {
	// Extract token from "Bearer <token>" format
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

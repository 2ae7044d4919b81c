package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"konnect/internal/auth"
	"konnect/internal/services"
	ws "konnect/internal/websocket"
)

// ChatHandler serves direct messaging and its live channel
type ChatHandler struct {
	messages *services.MessageService
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewChatHandler creates a ChatHandler. Websocket upgrades are accepted from allowedOrigins only.
func NewChatHandler(messages *services.MessageService, hub *ws.Hub, allowedOrigins []string) *ChatHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &ChatHandler{
		messages: messages,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

// Get answers the chat page's polling calls
// GET /chat?action=getUsers|getMessages|conversations|unread
func (h *ChatHandler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()

	switch actionOf(c) {
	case "getUsers":
		partners, err := h.messages.ChatPartners(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, partners)

	case "getMessages":
		partnerID, err := idParam(c, "partnerId")
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		messages, err := h.messages.Conversation(ctx, userID, partnerID, pageOf(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, messages)

	case "conversations":
		summaries, err := h.messages.Conversations(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, summaries)

	case "unread":
		n, err := h.messages.UnreadCount(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"unread": n})

	default:
		respondBadRequest(c, "invalid action")
	}
}

// Post sends a message
// POST /chat?action=sendMessage
func (h *ChatHandler) Post(c *gin.Context) {
	if actionOf(c) != "sendMessage" {
		respondBadRequest(c, "invalid action")
		return
	}

	var req struct {
		ReceiverID uint   `form:"receiverId" json:"receiverId" binding:"required"`
		Content    string `form:"content" json:"content"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "receiverId is required")
		return
	}

	userID, _ := auth.GetUserID(c)
	msg, err := h.messages.Send(c.Request.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, msg)
}

// ServeWS upgrades an authenticated request to a websocket that receives chat events
// GET /chat/ws
func (h *ChatHandler) ServeWS(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade to websocket:", err)
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

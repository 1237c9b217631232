package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chathub/backend/internal/hub"
)

// WebSocketHandler handles WebSocket attach requests for the chat hub.
type WebSocketHandler struct {
	wsHandler *hub.Handler
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(wsHandler *hub.Handler) *WebSocketHandler {
	return &WebSocketHandler{wsHandler: wsHandler}
}

// Attach handles GET /api/ws - upgrades the request and hands the
// connection to the hub under the authenticated identity.
func (h *WebSocketHandler) Attach(c *gin.Context) {
	identity := getIdentity(c)
	if identity == "" {
		sendError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Identity is required")
		return
	}

	if err := h.wsHandler.HandleConnection(c.Writer, c.Request, identity); err != nil {
		// The upgrader has already written the failure response.
		return
	}
}

// RegisterRoutes registers the WebSocket handler routes on a Gin router group.
func (h *WebSocketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Attach)
}

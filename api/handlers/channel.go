package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chathub/backend/internal/hub"
	"github.com/chathub/backend/internal/model"
)

// ChannelHandler handles HTTP requests for channel management. Create and
// delete go through the hub service so connected clients see the same
// notifications regardless of whether the request arrived over REST or the
// WebSocket.
type ChannelHandler struct {
	service *hub.Service
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(service *hub.Service) *ChannelHandler {
	return &ChannelHandler{service: service}
}

// ChannelResponse represents a channel in API responses.
type ChannelResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// toChannelResponse converts a model.Channel to ChannelResponse.
func toChannelResponse(ch *model.Channel) *ChannelResponse {
	return &ChannelResponse{
		ID:        ch.ID,
		Title:     ch.Title,
		CreatedAt: ch.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /api/channels - lists all channels.
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.service.ListChannels(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list channels: "+err.Error())
		return
	}

	response := make([]*ChannelResponse, len(channels))
	for i, ch := range channels {
		response[i] = toChannelResponse(ch)
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/channels - creates a new channel.
func (h *ChannelHandler) Create(c *gin.Context) {
	var req model.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}

	channel, err := h.service.CreateChannel(c.Request.Context(), req.Title)
	if err != nil {
		if errors.Is(err, model.ErrTitleRequired) {
			sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create channel: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, toChannelResponse(channel))
}

// Delete handles DELETE /api/channels/:id - deletes a channel. Deleting a
// channel that does not exist succeeds; the members either way end up not in
// it.
func (h *ChannelHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Channel ID must be an integer")
		return
	}

	if err := h.service.DeleteChannel(c.Request.Context(), id); err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete channel: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the channel handler routes on a Gin router group.
func (h *ChannelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	channels := rg.Group("/channels")
	{
		channels.GET("", h.List)
		channels.POST("", h.Create)
		channels.DELETE("/:id", h.Delete)
	}
}

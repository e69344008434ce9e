package controller

import (
	"net/http"
	"strconv"

	"codehunt/internal/cch23/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/logger"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ChatController upgrades chat connections and reports views.
type ChatController struct {
	hub      *service.ChatHub
	upgrader websocket.Upgrader
}

// NewChatController creates a new ChatController.
func NewChatController(hub *service.ChatHub) *ChatController {
	return &ChatController{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *ChatController) upgrade(c *gin.Context) (*websocket.Conn, bool) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already answered the request.
		logger.Debug(c.Request.Context(), "websocket upgrade failed", zap.Error(err))
		return nil, false
	}
	return conn, true
}

// Ping serves the ping pong game.
func (h *ChatController) Ping(c *gin.Context) {
	conn, ok := h.upgrade(c)
	if !ok {
		return
	}
	service.ServePing(c.Request.Context(), conn)
}

// Room joins a chat room as the named user.
func (h *ChatController) Room(c *gin.Context) {
	room, err := strconv.Atoi(c.Param("room"))
	if err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid room number"))
		return
	}
	user := c.Param("user")
	conn, ok := h.upgrade(c)
	if !ok {
		return
	}
	h.hub.Join(c.Request.Context(), conn, room, user)
}

// Reset zeroes the view counter.
func (h *ChatController) Reset(c *gin.Context) {
	if err := h.hub.ResetViews(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Views reports how many tweets were delivered since the last reset.
func (h *ChatController) Views(c *gin.Context) {
	views, err := h.hub.Views(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, strconv.FormatInt(views, 10))
}

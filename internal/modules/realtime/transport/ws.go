package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"pizzaUnlimitedApi/internal/modules/realtime/infrastructure"
	"pizzaUnlimitedApi/internal/shared/auth"
	"pizzaUnlimitedApi/internal/shared/httputil"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from a separate origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WSHandler upgrades admin dashboard connections onto the hub.
type WSHandler struct {
	hub    *infrastructure.Hub
	admins *auth.AdminTokens
}

func NewWSHandler(hub *infrastructure.Hub, admins *auth.AdminTokens) *WSHandler {
	return &WSHandler{hub: hub, admins: admins}
}

// Register mounts the live event stream. The token travels in the path,
// query, or bearer header; browser websocket clients cannot set headers.
func (h *WSHandler) Register(e *echo.Echo) {
	e.GET("/ws/admin/events", h.stream)
	e.GET("/ws/admin/events/:token", h.stream)
}

func (h *WSHandler) stream(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		token = auth.ExtractToken(c.Request(), "token")
	}
	if token == "" {
		return httputil.Fail(c, http.StatusUnauthorized, "Missing token.")
	}
	if err := h.admins.Verify(token); err != nil {
		return httputil.Fail(c, http.StatusUnauthorized, "Invalid or expired token.")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil
	}

	topics := []string{}
	if raw := strings.TrimSpace(c.QueryParam("topics")); raw != "" {
		topics = strings.Split(raw, ",")
	}

	client := infrastructure.NewClient(h.hub, conn, 64)
	h.hub.AttachClient(client, topics)
	go client.WritePump()
	go client.ReadPump()
	return nil
}

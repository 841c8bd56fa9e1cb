package handlers

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Prachiopenxcell/platform998_be/internal/logger"
	"github.com/Prachiopenxcell/platform998_be/internal/realtime"
	"github.com/Prachiopenxcell/platform998_be/internal/utils"
)

// NotificationsWSHandler streams dashboard notifications over a websocket.
type NotificationsWSHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
}

func NewNotificationsWSHandler(hub *realtime.Hub, jwtSecret string) *NotificationsWSHandler {
	return &NotificationsWSHandler{Hub: hub, JWTSecret: jwtSecret}
}

// Handle authenticates the socket from a ?token= query parameter; browsers
// cannot set headers on websocket upgrades.
func (h *NotificationsWSHandler) Handle(c *websocket.Conn) {
	token := c.Query("token")
	if token == "" {
		logger.L().Warn("ws: token parameter missing")
		c.Close()
		return
	}

	claims, err := utils.ParseJWT(h.JWTSecret, token)
	if err != nil {
		logger.L().Warn("ws: invalid token", zap.Error(err))
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		logger.L().Warn("ws: invalid user id in token", zap.Error(err))
		c.Close()
		return
	}

	client := &realtime.Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer func() {
		h.Hub.UnregisterClient(client)
		logger.L().Debug("ws: user disconnected", zap.String("user", userID.String()))
	}()

	logger.L().Debug("ws: user connected", zap.String("user", userID.String()))

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.L().Debug("ws: write error", zap.Error(err))
				return
			}
		}
	}()

	// Read loop keeps the connection alive; clients only send pongs.
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
		if msgType, ok := payload["type"].(string); ok && msgType == "pong" {
			continue
		}
	}
}

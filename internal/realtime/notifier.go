package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prachiopenxcell/platform998_be/internal/logger"
	"github.com/Prachiopenxcell/platform998_be/internal/models"
)

const notificationChannel = "p998:notifications"

// Notifier persists a notification, pushes it to the user's open sockets
// and publishes it on Redis so other instances can fan it out too.
type Notifier struct {
	DB  *gorm.DB
	Hub *Hub
	RDB *redis.Client
}

func NewNotifier(db *gorm.DB, hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{DB: db, Hub: hub, RDB: rdb}
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, title, body string) {
	notif := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := n.DB.WithContext(ctx).Create(&notif).Error; err != nil {
		logger.L().Error("create notification", zap.Error(err))
		return
	}

	n.Hub.SendToUser(userID, notif)

	if payload, err := json.Marshal(notif); err == nil {
		if err := n.RDB.Publish(ctx, notificationChannel, payload).Err(); err != nil {
			logger.L().Warn("publish notification", zap.Error(err))
		}
	}
}

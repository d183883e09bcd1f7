package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishNotification 把通知消息发送到队列中，
// 发送失败只记录日志而不影响主流程，排班和顶班的结果以数据库为准
func (h *Handler) publishNotification(message domain.NotificationMessage) {
	messageData, err := json.Marshal(message)
	if err != nil {
		slog.Error("序列化通知消息失败", "type", message.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        messageData,
		},
	); err != nil {
		slog.Error("发送通知消息失败", "type", message.Type, "to", message.To, "error", err)
	}
}

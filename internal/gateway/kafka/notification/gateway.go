package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"dispatch/internal/entities"
)

// Gateway публикует уведомления водителям в Kafka.
// Доставка до конкретного устройства - забота отдельного
// notification-сервиса, отсюда события уходят fire-and-forget.
type Gateway struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Gateway {
	return &Gateway{
		producer: producer,
		topic:    topic,
	}
}

type driverNotificationEvent struct {
	Kind          string `json:"kind"`
	DriverID      int64  `json:"driver_ID"`
	OrderID       string `json:"order_ID"`
	QueuePosition *int32 `json:"queue_position,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

func (g *Gateway) Notify(ctx context.Context, notification entities.DriverNotification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notify driver %d: %w", notification.DriverID, err)
	}

	event := driverNotificationEvent{
		Kind:          string(notification.Kind),
		DriverID:      notification.DriverID,
		OrderID:       notification.OrderID,
		QueuePosition: notification.QueuePosition,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal driver notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: g.topic,
		// ключ по водителю: события одного водителя уходят в одну партицию
		// и сохраняют порядок
		Key:   sarama.StringEncoder(strconv.FormatInt(notification.DriverID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := g.producer.SendMessage(message); err != nil {
		return fmt.Errorf("send driver notification: %w", err)
	}

	return nil
}

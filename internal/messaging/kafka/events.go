package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

// TopicOrderEvents — topic по умолчанию для событий заказов.
const TopicOrderEvents = "orderdesk.order.events"

// Заголовки сообщения.
const (
	HeaderEventType = "x-event-type"
	HeaderEventID   = "x-event-id"
	HeaderSource    = "x-source"
)

// SourceName — значение заголовка x-source.
const SourceName = "orderdesk"

// orderEventMessage — тело сообщения о заказе.
type orderEventMessage struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newOrderEventMessage(event domain.OrderEvent) orderEventMessage {
	occurred := event.Occurred
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return orderEventMessage{
		ID:         event.ID,
		EventType:  string(event.Type),
		OrderID:    event.OrderID,
		CustomerID: event.CustomerID,
		Status:     string(event.Status),
		Total:      event.Total,
		OccurredAt: occurred,
	}
}

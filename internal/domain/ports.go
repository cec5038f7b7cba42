package domain

import "time"

// KeyValueStore — сырое хранилище строк по ключу (аналог localStorage).
// Реализации: memory, file, postgres, redis, mongo.
type KeyValueStore interface {
	// Get возвращает значение и признак наличия ключа.
	Get(key string) (string, bool, error)
	// Set перезаписывает значение целиком.
	Set(key, value string) error
	// Delete удаляет ключ; отсутствие ключа ошибкой не считается.
	Delete(key string) error
	// Clear удаляет все ключи хранилища.
	Clear() error
	// Ping проверяет доступность бэкенда.
	Ping() error
}

// EventPublisher уведомляет внешний мир об изменениях заказов.
type EventPublisher interface {
	Publish(event OrderEvent) error
}

// OrderEventType — тип изменения заказа.
type OrderEventType string

const (
	OrderEventCreated   OrderEventType = "order.created"
	OrderEventUpdated   OrderEventType = "order.updated"
	OrderEventCancelled OrderEventType = "order.cancelled"
)

// OrderEvent — снимок заказа после зафиксированной мутации.
type OrderEvent struct {
	ID         string         `json:"id"`
	Type       OrderEventType `json:"event_type"`
	OrderID    string         `json:"order_id"`
	CustomerID string         `json:"customer_id"`
	Status     OrderStatus    `json:"status"`
	Total      float64        `json:"total"`
	Occurred   time.Time      `json:"occurred_at"`
}

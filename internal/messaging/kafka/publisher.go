package kafka

import (
	"fmt"
	"sync"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

// OrderEventPublisher публикует события заказов в Kafka с ключом = код заказа,
// чтобы события одного заказа попадали в одну партицию.
type OrderEventPublisher struct {
	producer *Producer
	topic    string

	mu      sync.Mutex
	lastErr error
}

// NewOrderEventPublisher создаёт паблишер; пустой topic заменяется TopicOrderEvents.
func NewOrderEventPublisher(producer *Producer, topic string) *OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{producer: producer, topic: topic}
}

// Publish отправляет событие синхронно.
func (p *OrderEventPublisher) Publish(event domain.OrderEvent) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka order publisher is not initialized")
	}

	headers := map[string]string{
		HeaderEventType: string(event.Type),
		HeaderEventID:   event.ID,
		HeaderSource:    SourceName,
	}
	err := p.producer.PublishEvent(p.topic, event.OrderID, newOrderEventMessage(event), headers)

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
	return err
}

// LastError возвращает ошибку последней публикации; nil после успешной отправки.
func (p *OrderEventPublisher) LastError() error {
	if p == nil {
		return fmt.Errorf("kafka order publisher is not initialized")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)

package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ожидает подтверждения.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusShipping — заказ передан в доставку.
	OrderStatusShipping OrderStatus = "shipping"
	// OrderStatusCompleted — заказ доставлен и закрыт.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled — заказ отменён оператором.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// AllStatuses возвращает статусы в порядке жизненного цикла.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusShipping,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipping, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal сообщает, является ли статус конечным.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Cancellable: отменить можно только заказ в статусе pending.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending
}

// Product — позиция каталога.
type Product struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Price     float64 `json:"price" yaml:"price"`
	Inventory int     `json:"inventory" yaml:"inventory"`
}

// Customer — покупатель, на которого ссылаются заказы.
type Customer struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Phone   string `json:"phone" yaml:"phone"`
	Address string `json:"address" yaml:"address"`
}

// OrderItem — снимок товара в заказе: имя и цена копируются из каталога
// в момент добавления и дальше не зависят от изменений каталога.
type OrderItem struct {
	ProductID   string  `json:"productId" yaml:"productId"`
	ProductName string  `json:"productName" yaml:"productName"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Price       float64 `json:"price" yaml:"price"`
}

// Subtotal возвращает price * quantity.
func (i OrderItem) Subtotal() float64 {
	return CalculateTotal([]OrderItem{i})
}

// Order агрегирует заказ покупателя. CustomerName денормализован при создании.
type Order struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customerId"`
	CustomerName string      `json:"customerName"`
	OrderDate    time.Time   `json:"orderDate"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
}

// Clone возвращает копию заказа с отдельным срезом позиций.
func (o Order) Clone() Order {
	if o.Items != nil {
		items := make([]OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

// CloneOrders копирует коллекцию заказов вместе с позициями.
func CloneOrders(orders []Order) []Order {
	if orders == nil {
		return nil
	}
	out := make([]Order, len(orders))
	for i, order := range orders {
		out[i] = order.Clone()
	}
	return out
}

// FindOrder возвращает индекс заказа с указанным ID или -1.
func FindOrder(orders []Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

// IsOrderIDDuplicate проверяет, занят ли идентификатор в коллекции.
func IsOrderIDDuplicate(orders []Order, id string) bool {
	return FindOrder(orders, id) >= 0
}

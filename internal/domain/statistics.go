package domain

import "github.com/shopspring/decimal"

// OrderStatistics — сводка по коллекции заказов.
// Выручка считается только по завершённым заказам.
type OrderStatistics struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingOrders   int     `json:"pendingOrders"`
	ShippingOrders  int     `json:"shippingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
}

// CalculateStatistics считает количество заказов по статусам и выручку.
func CalculateStatistics(orders []Order) OrderStatistics {
	stats := OrderStatistics{TotalOrders: len(orders)}
	revenue := decimal.Zero
	for _, order := range orders {
		switch order.Status {
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusShipping:
			stats.ShippingOrders++
		case OrderStatusCompleted:
			stats.CompletedOrders++
			revenue = revenue.Add(decimal.NewFromFloat(order.Total))
		case OrderStatusCancelled:
			stats.CancelledOrders++
		}
	}
	stats.TotalRevenue = revenue.InexactFloat64()
	return stats
}

// CountByStatus возвращает число заказов для каждого из четырёх статусов, включая нулевые.
func CountByStatus(orders []Order) map[OrderStatus]int {
	counts := make(map[OrderStatus]int, 4)
	for _, status := range AllStatuses() {
		counts[status] = 0
	}
	for _, order := range orders {
		if order.Status.Valid() {
			counts[order.Status]++
		}
	}
	return counts
}

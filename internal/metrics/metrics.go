package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты операций движка.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultRejected = "rejected"
	ResultInvalid  = "invalid"
	ResultFailed   = "failed"
)

// OrderDeskMetrics — метрики движка заказов и слоя хранения.
type OrderDeskMetrics struct {
	operations      *prometheus.CounterVec
	orders          *prometheus.GaugeVec
	viewCompute     prometheus.Histogram
	storageFailures *prometheus.CounterVec
}

// NewWithRegisterer регистрирует метрики в переданном registerer.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewWithRegisterer(registerer prometheus.Registerer) *OrderDeskMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderDeskMetrics{
		operations: register(registerer, "orderdesk_engine_operations_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderdesk_engine_operations_total",
			Help: "Engine mutations by operation and result",
		}, []string{"op", "result"})),
		orders: register(registerer, "orderdesk_orders", prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orderdesk_orders",
			Help: "Number of orders in the collection by status",
		}, []string{"status"})),
		viewCompute: register(registerer, "orderdesk_view_compute_seconds", prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orderdesk_view_compute_seconds",
			Help:    "Time spent recomputing the filtered and sorted order view",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		})),
		storageFailures: register(registerer, "orderdesk_storage_failures_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderdesk_storage_failures_total",
			Help: "Swallowed storage failures by adapter operation",
		}, []string{"op"})),
	}
}

func register[C prometheus.Collector](registerer prometheus.Registerer, name string, collector C) C {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector %q: %v", name, err))
	}
	return collector
}

// RecordOperation учитывает мутацию движка с её результатом.
func (m *OrderDeskMetrics) RecordOperation(op, result string) {
	m.operations.WithLabelValues(op, result).Inc()
}

// ObserveViewCompute записывает время пересчёта представления.
func (m *OrderDeskMetrics) ObserveViewCompute(duration time.Duration) {
	m.viewCompute.Observe(duration.Seconds())
}

// SetOrderCounts выставляет gauge по статусам. Статусы без заказов нужно передавать с нулём.
func (m *OrderDeskMetrics) SetOrderCounts(counts map[string]int) {
	for status, count := range counts {
		m.orders.WithLabelValues(status).Set(float64(count))
	}
}

// RecordStorageFailure учитывает проглоченный сбой хранилища.
func (m *OrderDeskMetrics) RecordStorageFailure(op string) {
	m.storageFailures.WithLabelValues(op).Inc()
}

// Package repository хранит коллекции заказов, покупателей и товаров целыми снимками.
package repository

import (
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
	"github.com/vladislavdragonenkov/orderdesk/internal/persistence"
	"github.com/vladislavdragonenkov/orderdesk/internal/seed"
)

// Форматы даты заказа, которые принимаются при чтении. Пишем всегда RFC3339Nano.
var orderDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// orderRecord — форма заказа в хранилище: дата лежит строкой.
type orderRecord struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName"`
	OrderDate    string             `json:"orderDate"`
	Status       domain.OrderStatus `json:"status"`
	Items        []domain.OrderItem `json:"items"`
	Total        float64            `json:"total"`
}

// Repository реализует domain.OrderRepository поверх persistence.Adapter.
type Repository struct {
	adapter *persistence.Adapter
	logger  *log.Entry
}

// New создаёт репозиторий. nil logger заменяется логгером по умолчанию.
func New(adapter *persistence.Adapter, logger *log.Entry) *Repository {
	if logger == nil {
		logger = log.WithField("component", "repository")
	}
	return &Repository{adapter: adapter, logger: logger}
}

// Orders загружает заказы и восстанавливает даты из строк.
// Сбой чтения превращается в пустую коллекцию; для записи используйте LoadOrders.
func (r *Repository) Orders() []domain.Order {
	orders, _ := r.LoadOrders()
	return orders
}

// LoadOrders как Orders, но возвращает ошибку, если хранилище не удалось прочитать.
// Пустой результат без ошибки означает, что заказов действительно нет.
func (r *Repository) LoadOrders() ([]domain.Order, error) {
	records, err := persistence.LoadChecked(r.adapter, persistence.KeyOrders, []orderRecord{})
	orders := make([]domain.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, domain.Order{
			ID:           rec.ID,
			CustomerID:   rec.CustomerID,
			CustomerName: rec.CustomerName,
			OrderDate:    r.parseOrderDate(rec.ID, rec.OrderDate),
			Status:       rec.Status,
			Items:        rec.Items,
			Total:        rec.Total,
		})
	}
	return orders, err
}

// Customers загружает справочник покупателей.
func (r *Repository) Customers() []domain.Customer {
	return persistence.Load(r.adapter, persistence.KeyCustomers, []domain.Customer{})
}

// Products загружает каталог.
func (r *Repository) Products() []domain.Product {
	return persistence.Load(r.adapter, persistence.KeyProducts, []domain.Product{})
}

// SaveOrders перезаписывает коллекцию заказов.
func (r *Repository) SaveOrders(orders []domain.Order) error {
	records := make([]orderRecord, 0, len(orders))
	for _, order := range orders {
		records = append(records, orderRecord{
			ID:           order.ID,
			CustomerID:   order.CustomerID,
			CustomerName: order.CustomerName,
			OrderDate:    formatOrderDate(order.OrderDate),
			Status:       order.Status,
			Items:        order.Items,
			Total:        order.Total,
		})
	}
	return r.adapter.Save(persistence.KeyOrders, records)
}

// SaveCustomers перезаписывает справочник покупателей.
func (r *Repository) SaveCustomers(customers []domain.Customer) error {
	if customers == nil {
		customers = []domain.Customer{}
	}
	return r.adapter.Save(persistence.KeyCustomers, customers)
}

// SaveProducts перезаписывает каталог.
func (r *Repository) SaveProducts(products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return r.adapter.Save(persistence.KeyProducts, products)
}

// SeedIfEmpty заполняет каждую пустую коллекцию данными из dataset.
// Непустые коллекции не трогаются, поэтому повторный вызов ничего не меняет.
// Коллекция, которую не удалось прочитать, не перезаписывается: ошибка чтения попадает в результат.
func (r *Repository) SeedIfEmpty(dataset seed.Dataset) error {
	orders, ordersErr := r.LoadOrders()
	customers, customersErr := persistence.LoadChecked(r.adapter, persistence.KeyCustomers, []domain.Customer{})
	products, productsErr := persistence.LoadChecked(r.adapter, persistence.KeyProducts, []domain.Product{})

	return errors.Join(
		r.seedCollection(persistence.KeyOrders, len(orders), ordersErr, len(dataset.Orders), func() error {
			return r.SaveOrders(dataset.Orders)
		}),
		r.seedCollection(persistence.KeyCustomers, len(customers), customersErr, len(dataset.Customers), func() error {
			return r.SaveCustomers(dataset.Customers)
		}),
		r.seedCollection(persistence.KeyProducts, len(products), productsErr, len(dataset.Products), func() error {
			return r.SaveProducts(dataset.Products)
		}),
	)
}

func (r *Repository) seedCollection(key string, existing int, readErr error, seeded int, save func() error) error {
	if readErr != nil {
		r.logger.WithError(readErr).WithField("key", key).Warn("skip seeding: collection could not be read")
		return readErr
	}
	if existing > 0 || seeded == 0 {
		return nil
	}
	if err := save(); err != nil {
		return err
	}
	r.logger.WithFields(log.Fields{"key": key, "count": seeded}).Info("seeded collection")
	return nil
}

func (r *Repository) parseOrderDate(orderID, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	r.logger.WithFields(log.Fields{
		"order_id":   orderID,
		"order_date": raw,
	}).Warn("unparseable order date, using zero time")
	return time.Time{}
}

func formatOrderDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

var _ domain.OrderRepository = (*Repository)(nil)

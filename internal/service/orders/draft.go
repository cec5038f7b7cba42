package orders

import (
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

// OrderDraft — поля нового заказа от оператора. Код и дату назначает движок.
// Total == nil означает "посчитать по позициям".
type OrderDraft struct {
	CustomerID   string
	CustomerName string
	Status       domain.OrderStatus
	Items        []domain.OrderItem
	Total        *float64
}

func (d OrderDraft) build(id string, now time.Time) domain.Order {
	status := d.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	items := append([]domain.OrderItem(nil), d.Items...)
	total := domain.CalculateTotal(items)
	if d.Total != nil {
		total = *d.Total
	}
	return domain.Order{
		ID:           id,
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		OrderDate:    now,
		Status:       status,
		Items:        items,
		Total:        total,
	}
}

// OrderPatch — частичное обновление: nil-поля не трогаются.
// Если заданы Items без Total, сумма пересчитывается.
type OrderPatch struct {
	CustomerID   *string
	CustomerName *string
	OrderDate    *time.Time
	Status       *domain.OrderStatus
	Items        []domain.OrderItem
	Total        *float64
}

func (p OrderPatch) apply(order *domain.Order) {
	if p.CustomerID != nil {
		order.CustomerID = *p.CustomerID
	}
	if p.CustomerName != nil {
		order.CustomerName = *p.CustomerName
	}
	if p.OrderDate != nil {
		order.OrderDate = *p.OrderDate
	}
	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.Items != nil {
		order.Items = append([]domain.OrderItem(nil), p.Items...)
		if p.Total == nil {
			order.Total = domain.CalculateTotal(order.Items)
		}
	}
	if p.Total != nil {
		order.Total = *p.Total
	}
}

// ItemsDraft собирает позиции заказа из каталога.
// Имя и цена копируются из товара в момент добавления.
type ItemsDraft struct {
	catalog map[string]domain.Product
	items   []domain.OrderItem
}

// NewItemsDraft создаёт черновик над каталогом, начиная с items.
func NewItemsDraft(products []domain.Product, items []domain.OrderItem) *ItemsDraft {
	catalog := make(map[string]domain.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return &ItemsDraft{
		catalog: catalog,
		items:   append([]domain.OrderItem(nil), items...),
	}
}

// NewItemsDraft создаёт черновик позиций над текущим каталогом движка.
func (e *Engine) NewItemsDraft(items []domain.OrderItem) *ItemsDraft {
	return NewItemsDraft(e.Products(), items)
}

// AddProduct добавляет товар; повторное добавление увеличивает количество.
func (d *ItemsDraft) AddProduct(productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrItemsInvalid, quantity)
	}
	product, ok := d.catalog[productID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	for i := range d.items {
		if d.items[i].ProductID == productID {
			d.items[i].Quantity += quantity
			return nil
		}
	}
	d.items = append(d.items, domain.OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Price:       product.Price,
	})
	return nil
}

// SetQuantity меняет количество существующей позиции.
func (d *ItemsDraft) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrItemsInvalid, quantity)
	}
	for i := range d.items {
		if d.items[i].ProductID == productID {
			d.items[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not in the draft", domain.ErrProductNotFound, productID)
}

// Remove убирает позицию; отсутствие позиции не ошибка.
func (d *ItemsDraft) Remove(productID string) {
	for i := range d.items {
		if d.items[i].ProductID == productID {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return
		}
	}
}

// Items возвращает копию позиций в порядке добавления.
func (d *ItemsDraft) Items() []domain.OrderItem {
	return append([]domain.OrderItem(nil), d.items...)
}

// Total — сумма позиций черновика.
func (d *ItemsDraft) Total() float64 {
	return domain.CalculateTotal(d.items)
}

// ProductOption — строка выбора товара.
type ProductOption struct {
	ProductID string  `json:"productId"`
	Label     string  `json:"label"`
	Price     float64 `json:"price"`
	Inventory int     `json:"inventory"`
	InStock   bool    `json:"inStock"`
}

// ProductPicker возвращает варианты для выбора товара в порядке каталога.
// Остаток только отображается: оформление заказа его не списывает.
func (e *Engine) ProductPicker() []ProductOption {
	products := e.Products()
	options := make([]ProductOption, 0, len(products))
	for _, p := range products {
		options = append(options, ProductOption{
			ProductID: p.ID,
			Label:     fmt.Sprintf("%s - %s", p.ID, p.Name),
			Price:     p.Price,
			Inventory: p.Inventory,
			InStock:   p.Inventory > 0,
		})
	}
	return options
}

// Package orders содержит движок запросов и мутаций над коллекцией заказов.
package orders

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
	"github.com/vladislavdragonenkov/orderdesk/internal/metrics"
)

// Имена операций для метрик и логов.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpCancel = "cancel"
)

// Metrics описывает то, что движок сообщает наружу. nil отключает метрики.
type Metrics interface {
	RecordOperation(op, result string)
	ObserveViewCompute(duration time.Duration)
	SetOrderCounts(counts map[string]int)
}

// Options задаёт зависимости движка.
type Options struct {
	Logger    *log.Entry
	Metrics   Metrics
	Publisher domain.EventPublisher
	Clock     func() time.Time
	Messages  domain.MessageFunc
}

// Option настраивает Engine.
type Option func(*Options)

// WithLogger задаёт logger движка.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) { opts.Logger = logger }
}

// WithMetrics подключает метрики.
func WithMetrics(m Metrics) Option {
	return func(opts *Options) { opts.Metrics = m }
}

// WithPublisher подключает публикацию событий после успешной записи.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(opts *Options) { opts.Publisher = publisher }
}

// WithClock подменяет источник текущего времени.
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) { opts.Clock = clock }
}

// WithMessages задаёт тексты нарушений валидации (например, из i18n).
func WithMessages(messages domain.MessageFunc) Option {
	return func(opts *Options) { opts.Messages = messages }
}

// Engine владеет коллекциями и параметрами представления.
// Каждая мутация перечитывает заказы из репозитория, пишет коллекцию целиком
// и пересчитывает представление от полного набора.
type Engine struct {
	mu sync.Mutex

	repo      domain.OrderRepository
	logger    *log.Entry
	metrics   Metrics
	publisher domain.EventPublisher
	now       func() time.Time
	messages  domain.MessageFunc

	orders    []domain.Order
	customers []domain.Customer
	products  []domain.Product
	params    domain.ViewParams
	view      []domain.Order
}

// NewEngine загружает коллекции из репозитория и строит представление по умолчанию.
func NewEngine(repo domain.OrderRepository, options ...Option) *Engine {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "orders-engine")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Messages == nil {
		opts.Messages = domain.DefaultMessage
	}

	e := &Engine{
		repo:      repo,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		publisher: opts.Publisher,
		now:       opts.Clock,
		messages:  opts.Messages,
		params:    domain.DefaultViewParams(),
	}
	e.Reload()
	return e
}

// Reload перечитывает все коллекции из репозитория.
// Если заказы прочитать не удалось, остаётся прежний снимок.
func (e *Engine) Reload() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if orders, err := e.repo.LoadOrders(); err != nil {
		e.logger.WithError(err).Warn("reload orders failed, keeping previous snapshot")
	} else {
		e.orders = orders
	}
	e.customers = e.repo.Customers()
	e.products = e.repo.Products()
	e.refreshLocked()
}

// Orders возвращает копию полной коллекции.
func (e *Engine) Orders() []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.CloneOrders(e.orders)
}

// View возвращает текущее производное представление.
func (e *Engine) View() []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.CloneOrders(e.view)
}

// Customers возвращает справочник покупателей.
func (e *Engine) Customers() []domain.Customer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Customer(nil), e.customers...)
}

// Products возвращает каталог.
func (e *Engine) Products() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Product(nil), e.products...)
}

// ViewParams возвращает текущие параметры представления.
func (e *Engine) ViewParams() domain.ViewParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// GenerateOrderID возвращает следующий свободный код заказа по текущему содержимому хранилища.
func (e *Engine) GenerateOrderID() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	orders, err := e.repo.LoadOrders()
	if err != nil {
		return "", err
	}
	return domain.NextOrderIDFor(orders)
}

// CalculateTotal — сумма price * quantity по позициям.
func (e *Engine) CalculateTotal(items []domain.OrderItem) float64 {
	return domain.CalculateTotal(items)
}

// Statistics считает сводку по полной коллекции, без учёта фильтров.
func (e *Engine) Statistics() domain.OrderStatistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.CalculateStatistics(e.orders)
}

// AddOrder создаёт заказ с новым кодом и текущим временем, проверяет его и сохраняет коллекцию.
func (e *Engine) AddOrder(draft OrderDraft) (domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.syncLocked(OpAdd, ""); err != nil {
		return domain.Order{}, err
	}
	id, err := domain.NextOrderIDFor(e.orders)
	if err != nil {
		return domain.Order{}, e.reject(OpAdd, metrics.ResultRejected, "", err)
	}

	now := e.now()
	order := draft.build(id, now)
	if err := domain.NewValidationError(order.ValidateInvariants(now), e.messages); err != nil {
		return domain.Order{}, e.reject(OpAdd, metrics.ResultInvalid, order.ID, err)
	}

	next := append(domain.CloneOrders(e.orders), order)
	if err := e.commitLocked(OpAdd, order.ID, next); err != nil {
		return domain.Order{}, err
	}
	e.publishLocked(domain.OrderEventCreated, order)
	return order.Clone(), nil
}

// UpdateOrder накладывает patch на заказ: заданные поля перезаписываются, остальные сохраняются.
// Статус меняется без проверки переходов.
func (e *Engine) UpdateOrder(id string, patch OrderPatch) (domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.syncLocked(OpUpdate, id); err != nil {
		return domain.Order{}, err
	}
	return e.updateLocked(OpUpdate, id, patch, domain.OrderEventUpdated, true)
}

// CancelOrder переводит заказ в cancelled; разрешено только из pending.
// Проверяется только переход статуса: старые нарушения в остальных полях отмене не мешают.
func (e *Engine) CancelOrder(id string) (domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.syncLocked(OpCancel, id); err != nil {
		return domain.Order{}, err
	}
	idx := domain.FindOrder(e.orders, id)
	if idx < 0 {
		return domain.Order{}, e.reject(OpCancel, metrics.ResultNotFound, id,
			fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id))
	}
	if status := e.orders[idx].Status; !status.Cancellable() {
		return domain.Order{}, e.reject(OpCancel, metrics.ResultRejected, id,
			fmt.Errorf("%w: %s is %s", domain.ErrOrderNotCancellable, id, status))
	}

	cancelled := domain.OrderStatusCancelled
	return e.updateLocked(OpCancel, id, OrderPatch{Status: &cancelled}, domain.OrderEventCancelled, false)
}

// SetStatusFilter задаёт фильтр по статусу; пустое значение снимает фильтр.
func (e *Engine) SetStatusFilter(status domain.OrderStatus) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrStatusInvalid, status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.StatusFilter = status
	e.refreshLocked()
	return nil
}

// SetSearchKeyword задаёт строку поиска по коду заказа и имени покупателя.
func (e *Engine) SetSearchKeyword(keyword string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.SearchKeyword = keyword
	e.refreshLocked()
}

// SetSort задаёт поле и направление сортировки.
func (e *Engine) SetSort(field domain.SortField, direction domain.SortDirection) error {
	if !field.Valid() {
		return fmt.Errorf("unsupported sort field %q", field)
	}
	if !direction.Valid() {
		return fmt.Errorf("unsupported sort direction %q", direction)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.SortField = field
	e.params.SortDirection = direction
	e.refreshLocked()
	return nil
}

// updateLocked накладывает patch; validate == false пропускает проверку инвариантов итогового заказа.
func (e *Engine) updateLocked(op, id string, patch OrderPatch, eventType domain.OrderEventType, validate bool) (domain.Order, error) {
	idx := domain.FindOrder(e.orders, id)
	if idx < 0 {
		return domain.Order{}, e.reject(op, metrics.ResultNotFound, id,
			fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id))
	}

	candidate := e.orders[idx].Clone()
	patch.apply(&candidate)
	if validate {
		if err := domain.NewValidationError(candidate.ValidateInvariants(e.now()), e.messages); err != nil {
			return domain.Order{}, e.reject(op, metrics.ResultInvalid, id, err)
		}
	}

	next := domain.CloneOrders(e.orders)
	next[idx] = candidate
	if err := e.commitLocked(op, id, next); err != nil {
		return domain.Order{}, err
	}
	e.publishLocked(eventType, candidate)
	return candidate.Clone(), nil
}

// syncLocked подтягивает заказы из репозитория перед изменением, чтобы не затереть
// записи другого процесса. При ошибке чтения мутация отклоняется и ничего не пишется.
func (e *Engine) syncLocked(op, id string) error {
	orders, err := e.repo.LoadOrders()
	if err != nil {
		return e.reject(op, metrics.ResultFailed, id, err)
	}
	e.orders = orders
	e.refreshLocked()
	return nil
}

// commitLocked сохраняет коллекцию и только после успешной записи подменяет состояние.
func (e *Engine) commitLocked(op, id string, next []domain.Order) error {
	if err := e.repo.SaveOrders(next); err != nil {
		return e.reject(op, metrics.ResultFailed, id, err)
	}
	e.orders = next
	e.refreshLocked()

	e.record(op, metrics.ResultSuccess)
	e.logger.WithFields(log.Fields{
		"op":       op,
		"order_id": id,
	}).Info("order collection updated")
	return nil
}

func (e *Engine) reject(op, result, id string, err error) error {
	e.record(op, result)
	e.logger.WithError(err).WithFields(log.Fields{
		"op":       op,
		"order_id": id,
		"result":   result,
	}).Warn("order operation rejected")
	return err
}

func (e *Engine) record(op, result string) {
	if e.metrics != nil {
		e.metrics.RecordOperation(op, result)
	}
}

func (e *Engine) refreshLocked() {
	start := time.Now()
	e.view = domain.ApplyView(e.orders, e.params)
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveViewCompute(time.Since(start))

	counts := make(map[string]int, 4)
	for status, n := range domain.CountByStatus(e.orders) {
		counts[string(status)] = n
	}
	e.metrics.SetOrderCounts(counts)
}

// publishLocked отправляет событие; сбой публикации не откатывает сохранённую коллекцию.
func (e *Engine) publishLocked(eventType domain.OrderEventType, order domain.Order) {
	if e.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Total:      order.Total,
		Occurred:   e.now().UTC(),
	}
	if err := e.publisher.Publish(event); err != nil {
		e.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"order_id":   order.ID,
		}).Warn("failed to publish order event")
	}
}

package persistence

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

// Фиксированные ключи коллекций.
const (
	KeyOrders    = "orders"
	KeyCustomers = "customers"
	KeyProducts  = "products"
	KeyUserData  = "userData"
)

// Операции для учёта сбоев.
const (
	OpLoad   = "load"
	OpDecode = "decode"
	OpSave   = "save"
	OpRemove = "remove"
	OpClear  = "clear"
)

// FailureRecorder получает сведения о проглоченных сбоях хранилища.
type FailureRecorder interface {
	RecordStorageFailure(op string)
}

// Options задаёт параметры адаптера.
type Options struct {
	Logger   *log.Entry
	Failures FailureRecorder
}

// Option настраивает Adapter.
type Option func(*Options)

// WithLogger задаёт logger адаптера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithFailureRecorder подключает учёт сбоев (например, метрики).
func WithFailureRecorder(recorder FailureRecorder) Option {
	return func(opts *Options) {
		opts.Failures = recorder
	}
}

// Adapter сериализует значения в JSON поверх KeyValueStore.
// Чтение никогда не возвращает ошибку: при отсутствии или порче данных
// подставляется значение по умолчанию.
type Adapter struct {
	store    domain.KeyValueStore
	logger   *log.Entry
	failures FailureRecorder
}

// NewAdapter создаёт адаптер над хранилищем.
func NewAdapter(store domain.KeyValueStore, options ...Option) *Adapter {
	var opts Options
	for _, option := range options {
		option(&opts)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "persistence")
	}
	return &Adapter{
		store:    store,
		logger:   logger,
		failures: opts.Failures,
	}
}

// Load читает значение под key или возвращает def.
func Load[T any](a *Adapter, key string, def T) T {
	value, _ := LoadChecked(a, key, def)
	return value
}

// LoadChecked ведёт себя как Load, но сообщает об ошибке чтения из хранилища,
// чтобы вызывающий не принял недоступное хранилище за пустое.
// Отсутствующий ключ и испорченный JSON ошибкой не считаются: это def, nil.
func LoadChecked[T any](a *Adapter, key string, def T) (T, error) {
	raw, ok, err := a.store.Get(key)
	if err != nil {
		a.fail(OpLoad, key, err)
		return def, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, key, err)
	}
	if !ok || raw == "" {
		return def, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		a.fail(OpDecode, key, err)
		return def, nil
	}
	return value, nil
}

// Save сериализует и записывает значение. Ошибка оборачивает domain.ErrPersistence.
func (a *Adapter) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		a.fail(OpSave, key, err)
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, key, err)
	}
	if err := a.store.Set(key, string(data)); err != nil {
		a.fail(OpSave, key, err)
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, key, err)
	}
	return nil
}

// Remove удаляет ключ; сбой только логируется.
func (a *Adapter) Remove(key string) {
	if err := a.store.Delete(key); err != nil {
		a.fail(OpRemove, key, err)
	}
}

// ClearAll очищает хранилище; сбой только логируется.
func (a *Adapter) ClearAll() {
	if err := a.store.Clear(); err != nil {
		a.fail(OpClear, "*", err)
	}
}

func (a *Adapter) fail(op, key string, err error) {
	a.logger.WithError(err).WithFields(log.Fields{
		"op":  op,
		"key": key,
	}).Warn("storage operation failed")
	if a.failures != nil {
		a.failures.RecordStorageFailure(op)
	}
}

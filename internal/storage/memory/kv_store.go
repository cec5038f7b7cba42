package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

// kvStoreInMemory — in-memory реализация KeyValueStore для локальной разработки и тестов.
type kvStoreInMemory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewKeyValueStore возвращает пустое in-memory хранилище.
func NewKeyValueStore() domain.KeyValueStore {
	return &kvStoreInMemory{
		items: make(map[string]string),
	}
}

// Get возвращает значение ключа.
func (s *kvStoreInMemory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	return value, ok, nil
}

// Set перезаписывает значение.
func (s *kvStoreInMemory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

// Delete удаляет ключ, если он есть.
func (s *kvStoreInMemory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Clear очищает хранилище.
func (s *kvStoreInMemory) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]string)
	return nil
}

// Ping всегда успешен.
func (s *kvStoreInMemory) Ping() error {
	return nil
}

var _ domain.KeyValueStore = (*kvStoreInMemory)(nil)
